package dumper

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func decodeYAML(r io.Reader) (map[string]any, error) {
	raw := make(map[string]any)
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: yaml: %s", ErrInvalidProfile, err)
	}
	return raw, nil
}
