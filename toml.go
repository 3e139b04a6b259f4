package dumper

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

func decodeTOML(r io.Reader) (map[string]any, error) {
	raw := make(map[string]any)
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: toml: %s", ErrInvalidProfile, err)
	}
	return raw, nil
}
