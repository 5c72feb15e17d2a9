package main

import (
	"log"

	"github.com/hidaya-tech/mizan/internal/storage"
)

// InitStorage selects and returns the configured report-archive backend
func InitStorage(env Environment) storage.Storage {
	if env.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatalf("failed to initialize Spaces storage: %v", err)
		}
		log.Printf("Using DigitalOcean Spaces report archive with CDN: %s", env.SpacesCDNURL)
		return spacesStorage
	}

	local := storage.NewLocalStorage(env.ReportDir)
	log.Printf("Using local report archive in %s", env.ReportDir)
	return local
}
