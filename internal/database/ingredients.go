// internal/database/ingredients.go
package database

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipebox/recipebox-backend/internal/models"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// LoadIngredients imports reference ingredients from a JSON file of
// {"name": ..., "measurement_unit": ...} records. Existing pairs are
// left untouched, so repeated imports are safe.
func LoadIngredients(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read ingredients file %s: %w", path, err)
	}

	var records []ingredientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse ingredients file %s: %w", path, err)
	}

	var imported int64
	for _, record := range records {
		if record.Name == "" || record.MeasurementUnit == "" {
			logrus.Warnf("Skipping malformed ingredient record: %+v", record)
			continue
		}

		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Ingredient{
			Name:            record.Name,
			MeasurementUnit: record.MeasurementUnit,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to import ingredient %q: %w", record.Name, result.Error)
		}
		imported += result.RowsAffected
	}

	logrus.WithFields(logrus.Fields{
		"total":    len(records),
		"imported": imported,
	}).Info("Ingredient import completed")
	return nil
}
