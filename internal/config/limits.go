package config

const (
	// MaxTitleLength is the maximum length for problem titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxContentLength is the maximum length for problem, solution and
	// comment bodies. Generous, but bounded so a single record cannot
	// balloon the persisted collection payload.
	MaxContentLength = 20000

	// MaxNameLength is the maximum length for display names supplied at
	// registration.
	MaxNameLength = 100
)
