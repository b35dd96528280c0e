package bitmem

import (
	"os"
	"path/filepath"

	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/errors"
	"gopkg.in/yaml.v3"
)

// Model is the YAML definition of one device model: how large its memory
// image is, the schema describing the image, and optional checks evaluated
// against a decoded image. Setup compiles everything once; sessions then
// reuse the compiled scheme for every image of the model.
type Model struct {
	Name       string   `yaml:"name"`
	Size       int      `yaml:"size"`
	Fill       byte     `yaml:"fill"`
	Schema     string   `yaml:"schema"`
	SchemaFile string   `yaml:"schema_file"`
	Checks     []string `yaml:"checks"`

	scheme     *core.Scheme
	evaluators []*core.CelEvaluator
}

func LoadModel(configBytes []byte) (*Model, error) {
	model := &Model{}
	if err := yaml.Unmarshal(configBytes, model); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := model.Setup(""); err != nil {
		return nil, err
	}
	return model, nil
}

func LoadModelFromFile(configFile string) (*Model, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	model := &Model{}
	if err = yaml.Unmarshal(data, model); err != nil {
		return nil, errors.WithStack(err)
	}
	if err = model.Setup(filepath.Dir(configFile)); err != nil {
		return nil, err
	}
	return model, nil
}

// Setup compiles the schema and the check expressions. baseDir anchors a
// relative schema_file.
func (this *Model) Setup(baseDir string) error {
	var err error
	switch {
	case this.Schema != "":
		this.scheme, err = core.NewScheme(this.Schema)
	case this.SchemaFile != "":
		this.scheme, err = core.NewSchemeFromFile(filepath.Join(baseDir, this.SchemaFile))
	default:
		return errors.Errorf("model %s: schema or schema_file required", this.Name)
	}
	if err != nil {
		return errors.Wrapf(err, "model %s: schema compile failed", this.Name)
	}

	if this.Size == 0 {
		this.Size = this.scheme.Size()
	}
	if this.Size < this.scheme.Size() {
		return errors.Errorf("model %s: declared size %d smaller than layout %d",
			this.Name, this.Size, this.scheme.Size())
	}

	for _, check := range this.Checks {
		ev, err := core.CompileExpression(check)
		if err != nil {
			return errors.Wrapf(err, "model %s: check %q compile failed", this.Name, check)
		}
		this.evaluators = append(this.evaluators, ev)
	}
	return nil
}

func (this *Model) Scheme() *core.Scheme {
	return this.scheme
}

// NewSession binds a downloaded image. The image must match the model's
// declared size exactly.
func (this *Model) NewSession(image []byte) (*Session, error) {
	if len(image) != this.Size {
		return nil, core.NewOutOfBoundsError(0, len(image), this.Size)
	}
	return NewSession(this.scheme, image)
}

// NewBlankSession builds a session over a fresh fill-pattern image.
func (this *Model) NewBlankSession() (*Session, error) {
	return NewBlankSession(this.scheme, this.Size, this.Fill)
}

// Verify evaluates every model check against the session's decoded fields
// and fails on the first expression that is not true.
func (this *Model) Verify(session *Session) error {
	if len(this.evaluators) == 0 {
		return nil
	}
	fields, err := session.Root().Values()
	if err != nil {
		return errors.WithStack(err)
	}
	for i, ev := range this.evaluators {
		res, err := ev.Execute(fields)
		if err != nil {
			return errors.Wrapf(err, "model %s: check %q", this.Name, this.Checks[i])
		}
		ok, isBool := res.(bool)
		if !isBool {
			return errors.Errorf("model %s: check %q did not return a bool", this.Name, this.Checks[i])
		}
		if !ok {
			return errors.Errorf("model %s: check %q failed", this.Name, this.Checks[i])
		}
	}
	return nil
}
