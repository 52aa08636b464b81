package config

// NewAuthForTest creates an Auth config for testing purposes
func NewAuthForTest(serviceURL, anonKey, noAuthEmail string) *Auth {
	return &Auth{
		serviceURL:  serviceURL,
		anonKey:     anonKey,
		noAuthEmail: noAuthEmail,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}

// NewProviderForTest creates a Provider config for testing purposes
func NewProviderForTest(apiKey, endpoint, model string) *Provider {
	return &Provider{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
	}
}

// NewLevelsForTest creates a Levels config for testing purposes
func NewLevelsForTest(path string) *Levels {
	return &Levels{path: path}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
