package utils

import "medibook/config"

// IsProduction reports whether the app runs with the production environment profile.
func IsProduction() bool {
	return config.IsProduction()
}
