package dumper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

func jsonStep(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err.Error()
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func decodeJSON(r io.Reader) (map[string]any, error) {
	raw := make(map[string]any)
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: json: %s", ErrInvalidProfile, err)
	}
	return raw, nil
}
