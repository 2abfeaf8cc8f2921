package utils

import (
	"encoding/json"
	"fmt"
	"hub/database"
	"hub/models"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GenerateAccessToken returns an opaque possession token for guest tickets.
func GenerateAccessToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// GenerateReceiptNumber returns a unique human-readable receipt number.
func GenerateReceiptNumber() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("RCPT-%s-%s", time.Now().Format("20060102"), short)
}

// WriteAudit appends an audit log entry. Audit failures are logged, never
// surfaced: the triggering action must not fail because the log write did.
func WriteAudit(actorID uint, action, resourceType string, resourceID uint, details map[string]interface{}) {
	entry := models.AuditLogEntry{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}
	if err := database.Database.Db.Create(&entry).Error; err != nil {
		log.Printf("[AUDIT] Failed to write audit entry %s: %v", action, err)
	}
}
