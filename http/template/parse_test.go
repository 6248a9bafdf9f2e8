package template_test

import (
	"bytes"
	html "html/template"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch/http/template"
	tt "github.com/xy-planning-network/dispatch/http/template/templatetest"
)

type testFn func(*testing.T, *html.Template, error)

func TestParse(t *testing.T) {
	stub := []byte("<!DOCTYPE html>\n<html></html>")
	tcs := []struct {
		name   string
		parser template.Parser
		fps    []string
		assert testFn
	}{
		{
			name:   "Zero-Value",
			parser: tt.NewParser(),
			fps:    []string{},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Empty-String",
			parser: tt.NewParser(tt.NewMockFile("", nil)),
			fps:    []string{"", ""},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "No-File",
			parser: tt.NewParser(tt.NewMockFile("", nil)),
			fps:    []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NotNil(t, err)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Not-Empty-File",
			parser: tt.NewParser(tt.NewMockFile("example.tmpl", stub)),
			fps:    []string{"", "example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, stub, b.Bytes())
			},
		},
		{
			name: "Many-Files",
			parser: tt.NewParser(
				tt.NewMockFile(
					"example.tmpl",
					[]byte(`<!DOCTYPE html><html>{{ template "test" }}</html>`),
				),
				tt.NewMockFile(
					"test.tmpl",
					[]byte(`{{ define "test" }}<p>sup</p>{{ end }}`),
				),
			),
			fps: []string{"example.tmpl", "test.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "example.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.ExecuteTemplate(b, "example.tmpl", nil))
				require.Equal(t, "<!DOCTYPE html><html><p>sup</p></html>", b.String())
			},
		},
		{
			name: "Default-Fns",
			parser: tt.NewParser(
				tt.NewMockFile(
					"example.tmpl",
					[]byte(`{{ rootUrl }}|{{ env }}|{{ currentURL }}`),
				),
			),
			fps: []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "||", b.String())
			},
		},
		{
			name: "Add-Fns",
			parser: template.NewParser(
				template.WithFS(tt.NewMockFS(
					tt.NewMockFile(
						"example.tmpl",
						[]byte(`{{ test }} {{ env }}`),
					),
				)),
				template.WithFn("test", func() string { return "hello" }),
				template.WithFn(template.Env("testing")),
			),
			fps: []string{"example.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "hello testing", b.String())
			},
		},
		{
			name:   "Embedded-Fallback",
			parser: tt.NewParser(),
			fps:    []string{"tmpl/success.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "success.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				data := map[string]any{"Attrs": map[string]any{"successMessage": "saved <it>"}}
				require.Nil(t, tmpl.Execute(b, data))
				require.Contains(t, b.String(), "saved &lt;it&gt;")
			},
		},
		{
			name: "User-Overrides-Embedded",
			parser: tt.NewParser(
				tt.NewMockFile("tmpl/success.tmpl", []byte("mine")),
			),
			fps: []string{"tmpl/success.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "mine", b.String())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			tmpl, err := tc.parser.Parse(tc.fps...)

			// Assert
			tc.assert(t, tmpl, err)
		})
	}
}
