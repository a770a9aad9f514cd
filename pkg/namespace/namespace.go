package namespace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Namespace is a discovered namespace directory and the metadata from its marker file.
type Namespace struct {
	Name        string   `toml:"-" json:"name"`
	Dir         string   `toml:"-" json:"dir"`
	Description string   `toml:"description" json:"description,omitempty" validate:"max=500"`
	Tags        []string `toml:"tags" json:"tags,omitempty" validate:"dive,required"`
}

// Path joins rel onto the namespace directory.
func (n Namespace) Path(rel string) string {
	return filepath.Join(n.Dir, filepath.FromSlash(rel))
}

// Migrations returns the namespace migrations directory if it exists.
func (n Namespace) Migrations() (string, bool) {
	dir := n.Path(MigrationsDir)
	return dir, isDir(dir)
}

// Route is a single entry of a routing definition.
type Route struct {
	Path    string            `toml:"path" validate:"max=512"`
	Name    string            `toml:"name" validate:"omitempty,max=100"`
	Methods []string          `toml:"methods" validate:"dive,oneof=GET HEAD POST PUT PATCH DELETE OPTIONS"`
	Handler string            `toml:"handler" validate:"required"`
	Options map[string]string `toml:"options"`
}

// Option returns the named option or fallback when unset.
func (r Route) Option(key, fallback string) string {
	if v, ok := r.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}

// manifest is the decoded routing definition. Routes is a pointer so a
// definition that omits the routes array can be told apart from an empty one.
type manifest struct {
	Routes *[]Route `toml:"routes"`
}

func (r *Route) normalize() {
	r.Path = strings.TrimPrefix(strings.TrimSpace(r.Path), "/")
	for i, m := range r.Methods {
		r.Methods[i] = strings.ToUpper(strings.TrimSpace(m))
	}
}

func decodeStrict(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func readMarker(dir string) (Namespace, error) {
	data, err := os.ReadFile(filepath.Join(dir, MarkerFile))
	if err != nil {
		return Namespace{}, err
	}

	var ns Namespace
	if err := decodeStrict(data, &ns); err != nil {
		return Namespace{}, err
	}
	return ns, nil
}
