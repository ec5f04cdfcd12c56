package domain

import (
	"fmt"
	"strings"
)

// FieldCrossField dipakai sebagai tag Violation untuk aturan yang melibatkan
// lebih dari satu field (mis. kombinasi harga dan stok, daily limit).
const FieldCrossField = "cross-field"

// Violation merepresentasikan satu pelanggaran aturan validasi.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError membawa seluruh pelanggaran yang ditemukan validator dalam
// satu kali evaluasi, urut sesuai urutan aturan.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is memungkinkan pengecekan tipe via errors.Is tanpa membandingkan isi.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}
