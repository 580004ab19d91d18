package prefs

// Version is the library release version reported by the prefctl CLI.
const Version = "0.1.0"
