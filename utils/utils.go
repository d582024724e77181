package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/models"

	"gorm.io/gorm"
)

// InsertTransactionHistory appends one audit row. Failures here must not
// abort the transaction that caused them, so callers decide what to do
// with the error.
func InsertTransactionHistory(db *gorm.DB, refNo, serialNo, status, txType, detail string, actor int) error {
	history := models.TransactionHistory{
		RefNo:     refNo,
		SerialNo:  serialNo,
		Status:    status,
		Type:      txType,
		Detail:    detail,
		CreatedAt: time.Now(),
		CreatedBy: actor,
		UpdatedAt: time.Now(),
		UpdatedBy: actor,
	}

	if err := db.Create(&history).Error; err != nil {
		return err
	}

	return nil
}

// NextDocNumber generates document numbers like PI2509010001: prefix,
// date as YYMMDD, then a sequence that resets daily. The sequence is
// zero padded to four digits and simply grows wider past 9999.
func NextDocNumber(prefix, lastNo string, now time.Time) string {
	currentDate := now.Format("060102")

	if lastNo != "" && len(lastNo) >= len(prefix)+10 {
		lastDatePart := lastNo[len(prefix) : len(prefix)+6]
		lastSequenceStr := lastNo[len(prefix)+6:]

		if currentDate == lastDatePart {
			if lastSequenceInt, err := strconv.Atoi(lastSequenceStr); err == nil {
				return fmt.Sprintf("%s%s%04d", prefix, currentDate, lastSequenceInt+1)
			}
		}
	}

	return fmt.Sprintf("%s%s%04d", prefix, currentDate, 1)
}
