package dumper

import (
	"bytes"
	"fmt"
	"text/template"
)

func templateStep(tmplStr string) (Step, error) {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return func(v any) string {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, v); err != nil {
			return err.Error()
		}
		return buf.String()
	}, nil
}
