package prefs

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// obscurePrefix marks a stored password as obscured. Values without the
// prefix are accepted verbatim so hand-edited plain entries still load.
const obscurePrefix = "$e]"

const obscureKey = 0x5a

func obscure(plain string) string {
	raw := []byte(plain)
	for i := range raw {
		raw[i] ^= obscureKey
	}
	return obscurePrefix + hex.EncodeToString(raw)
}

func unobscure(stored string) (string, error) {
	if !strings.HasPrefix(stored, obscurePrefix) {
		return stored, nil
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(stored, obscurePrefix))
	if err != nil {
		return "", err
	}
	for i := range raw {
		raw[i] ^= obscureKey
	}
	return string(raw), nil
}

func passwordCodec() codec[string] {
	return codec[string]{encode: obscure, decode: unobscure}
}

// expandPath substitutes environment variables and a leading "~" with the
// current user's home directory.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func pathCodec() codec[string] {
	return codec[string]{
		encode: func(v string) string { return v },
		decode: func(raw string) (string, error) { return expandPath(raw), nil },
	}
}

func pathListCodec() codec[[]string] {
	return codec[[]string]{
		encode: stringListCodec().encode,
		decode: func(raw string) ([]string, error) {
			var v []string
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, err
			}
			for i := range v {
				v[i] = expandPath(v[i])
			}
			return v, nil
		},
	}
}
