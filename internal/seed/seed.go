package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/turnoshq/roster-manager/backend/internal/config"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
	"github.com/turnoshq/roster-manager/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// The legacy planning spreadsheets were Spanish. Their band labels map onto
// the four fixed bands; "Aleatorio" rows carry no fixed preference and fall
// back to the rotation pattern.
var LegacyBandMap = map[string]domain.ShiftBand{
	"Mañana":   domain.BandEarlyMorning,
	"Día":      domain.BandDaytime,
	"Tarde":    domain.BandEvening,
	"Noche":    domain.BandOvernight,
	"6am-2pm":  domain.BandEarlyMorning,
	"9am-6pm":  domain.BandDaytime,
	"6pm-2am":  domain.BandEvening,
	"10pm-6am": domain.BandOvernight,
}

var requiredHeaders = []string{"Nombre", "Pool", "Coordinador", "Turno_Fijo"}

// SeedLegacyRoster imports workers from a legacy planning CSV. Rows without a
// coordinator land in the reserve pool; unknown coordinators are created on
// the fly with the seed password.
func SeedLegacyRoster(r *repository.Repository, cfg *config.Config) {
	file, err := os.Open(cfg.Seed.LegacyCSVPath)
	if err != nil {
		slog.Error("failed to open legacy CSV", "path", cfg.Seed.LegacyCSVPath, "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		slog.Error("failed to read CSV header", "error", err)
		return
	}

	for _, required := range requiredHeaders {
		if !slices.Contains(headers, required) {
			slog.Error("CSV is missing a required column", "column", required)
			return
		}
	}

	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("failed to read CSV row", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = strings.TrimSpace(value)
		}
		records = append(records, record)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.Coordinator.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash seed password", "error", err)
		return
	}

	coordinatorIDs := make(map[string]int64)
	imported := 0

	for _, record := range records {
		name := record["Nombre"]
		if name == "" {
			slog.Error("row without a name skipped", "record", record)
			continue
		}

		worker := &domain.Worker{
			Name:     name,
			HomePool: record["Pool"],
		}
		if worker.HomePool == "" {
			worker.HomePool = "Legacy"
		}

		if band, ok := LegacyBandMap[record["Turno_Fijo"]]; ok {
			worker.PreferredBand = &band
		} else if record["Turno_Fijo"] != "" && record["Turno_Fijo"] != "Aleatorio" {
			slog.Error("unknown band label skipped", "label", record["Turno_Fijo"], "worker", name)
			continue
		}

		// An empty Coordinador column means the worker starts in the
		// reserve pool.
		if username := record["Coordinador"]; username != "" {
			id, ok := coordinatorIDs[username]
			if !ok {
				coordinator, err := r.GetCoordinatorByUsername(username)
				switch {
				case err == nil:
					id = coordinator.ID
				case errors.Is(err, sql.ErrNoRows):
					coordinator = &domain.Coordinator{
						Username:     username,
						PasswordHash: string(passwordHash),
						FullName:     username,
						Email:        username + "@" + cfg.Email.UserDomain,
						Role:         domain.RoleCoordinator,
					}
					if err := r.CreateCoordinator(coordinator); err != nil {
						slog.Error("failed to create coordinator", "username", username, "error", err)
						continue
					}
					id = coordinator.ID
				default:
					slog.Error("failed to look up coordinator", "username", username, "error", err)
					continue
				}
				coordinatorIDs[username] = id
			}
			worker.CoordinatorID = &id
		}

		if err := r.CreateWorker(worker); err != nil {
			slog.Error("failed to insert worker", "name", name, "error", err)
			continue
		}
		imported++
	}

	slog.Info("legacy import finished", "workers", imported, "coordinators", len(coordinatorIDs))
}
