package scope

// MaxBreadcrumbs is the default and the ceiling for Config.MaxBreadcrumbs.
const MaxBreadcrumbs = 100

// Config controls scopes created by a Manager.
type Config struct {
	// MaxBreadcrumbs caps the breadcrumb buffer of every scope. Values <= 0
	// or above MaxBreadcrumbs mean MaxBreadcrumbs.
	MaxBreadcrumbs int `envconfig:"MAX_BREADCRUMBS" default:"100"`
}

func (c Config) maxBreadcrumbs() int {
	if c.MaxBreadcrumbs <= 0 || c.MaxBreadcrumbs > MaxBreadcrumbs {
		return MaxBreadcrumbs
	}
	return c.MaxBreadcrumbs
}
