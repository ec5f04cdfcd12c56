package metrics

import (
	"encoding/json"

	"github.com/ridloal/product-catalog-service/internal/platform/logger"
)

// CreationRecord adalah catatan terstruktur satu operasi pembuatan produk.
// Write-only: tidak ada jalur baca, consumer-nya pipeline log/metrics eksternal.
type CreationRecord struct {
	OperationID          string `json:"operation_id"`
	ProductName          string `json:"product_name"`
	SKU                  string `json:"sku"`
	Category             string `json:"category"`
	ValidationDurationMs int64  `json:"validation_duration_ms"`
	DBDurationMs         int64  `json:"db_duration_ms"`
	TotalDurationMs      int64  `json:"total_duration_ms"`
	Success              bool   `json:"success"`
	ErrorReason          string `json:"error_reason,omitempty"`
}

type Recorder interface {
	RecordCreation(record CreationRecord)
}

// LogRecorder menulis record sebagai JSON ke logger aplikasi. Emisi metric
// tidak boleh menggagalkan operasi; error marshal hanya dicatat.
type LogRecorder struct{}

func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

func (r *LogRecorder) RecordCreation(record CreationRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		logger.Error("Metrics: failed to marshal creation record", err)
		return
	}
	logger.Info("Metric: product_creation %s", data)
}
