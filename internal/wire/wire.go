// Package wire provides dependency injection for the relief engine.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/relief/internal/adapters/cli"
	"github.com/example/relief/internal/adapters/sqlite"
	"github.com/example/relief/internal/app"
	"github.com/example/relief/internal/config"
	"github.com/example/relief/internal/db"
	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

var (
	allocationService primary.AllocationService
	donationService   primary.DonationService
	volunteerService  primary.VolunteerService
	campService       primary.CampService
	disasterRepo      secondary.DisasterRepository
	auditLogRepo      secondary.AuditLogRepository
	once              sync.Once
)

// AllocationService returns the singleton AllocationService instance.
func AllocationService() primary.AllocationService {
	once.Do(initServices)
	return allocationService
}

// DonationService returns the singleton DonationService instance.
func DonationService() primary.DonationService {
	once.Do(initServices)
	return donationService
}

// VolunteerService returns the singleton VolunteerService instance.
func VolunteerService() primary.VolunteerService {
	once.Do(initServices)
	return volunteerService
}

// CampService returns the singleton CampService instance.
func CampService() primary.CampService {
	once.Do(initServices)
	return campService
}

// DisasterRepo returns the singleton DisasterRepository. Disasters have no
// engine-side service; the CLI reads them directly.
func DisasterRepo() secondary.DisasterRepository {
	once.Do(initServices)
	return disasterRepo
}

// AuditLogRepo returns the singleton AuditLogRepository.
func AuditLogRepo() secondary.AuditLogRepository {
	once.Do(initServices)
	return auditLogRepo
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Config is optional; absent file means default policy values.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		cfg = config.Default()
	}
	if cfg.DatabasePath != "" {
		db.SetPath(cfg.DatabasePath)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) with injected DB
	disasterRepo = sqlite.NewDisasterRepository(database)
	campRepo := sqlite.NewCampRepository(database)
	resourceRepo := sqlite.NewResourceRepository(database)
	donationRepo := sqlite.NewDonationRepository(database)
	allocRepo := sqlite.NewAllocationRepository(database)
	volunteerRepo := sqlite.NewVolunteerRepository(database)
	assignmentRepo := sqlite.NewAssignmentRepository(database)
	auditLogRepo = sqlite.NewAuditLogRepository(database)

	// Create services (primary ports implementation)
	allocationService = app.NewAllocationService(resourceRepo, donationRepo, allocRepo)
	donationService = app.NewDonationService(donationRepo)
	volunteerService = app.NewVolunteerService(volunteerRepo, assignmentRepo, cfg.MaxActiveAssignments)
	campService = app.NewCampService(campRepo, cfg.OvercrowdThreshold)
}

// AllocationAdapter returns a new AllocationAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func AllocationAdapter() *cliadapter.AllocationAdapter {
	return AllocationAdapterWithOutput(os.Stdout)
}

// AllocationAdapterWithOutput returns a new AllocationAdapter writing to the
// given output. This variant allows testing or alternate output destinations.
func AllocationAdapterWithOutput(out io.Writer) *cliadapter.AllocationAdapter {
	once.Do(initServices)
	return cliadapter.NewAllocationAdapter(allocationService, out)
}

// VolunteerAdapter returns a new VolunteerAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func VolunteerAdapter() *cliadapter.VolunteerAdapter {
	return VolunteerAdapterWithOutput(os.Stdout)
}

// VolunteerAdapterWithOutput returns a new VolunteerAdapter writing to the
// given output. This variant allows testing or alternate output destinations.
func VolunteerAdapterWithOutput(out io.Writer) *cliadapter.VolunteerAdapter {
	once.Do(initServices)
	return cliadapter.NewVolunteerAdapter(volunteerService, out)
}
