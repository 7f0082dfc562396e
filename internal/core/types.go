package core

// Model defines the minimal contract a time-stepped coastal model must
// implement to be driven by the runners and the viewer.
type Model interface {
	Name() string
	Reset() error
	Step() bool
	Time() float64
	Profile() *Profile
	SeaLevel() float64
}

// Factory constructs a Model from flag-style key/value overrides.
type Factory func(cfg map[string]string) (Model, error)

var models = map[string]Factory{}

// Register adds a model factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	models[name] = f
}

// Models exposes the registry of available model factories.
func Models() map[string]Factory {
	return models
}
