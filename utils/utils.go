package utils

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

func GenerateUuid() string {
	uuid1, err := uuid.NewUUID()
	if err != nil {
		panic("Failed to generate UUID")
	}

	return uuid1.String()
}

func IsDirectoryWritable(path string) bool {
	probeFile := filepath.Join(path, ".nimbus-probe")

	if err := os.WriteFile(probeFile, []byte{}, 0600); err != nil {
		return false
	}

	_ = os.Remove(probeFile)
	return true
}

func GetItemsFromList[T any](items []T, limit int, offset int) []T {
	if offset >= len(items) {
		return make([]T, 0)
	}

	end := min(offset+limit, len(items))
	return items[offset:end]
}
