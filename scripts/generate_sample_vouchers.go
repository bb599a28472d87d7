package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleVouchers creates sample voucher batch files for local testing.
// A code is honoured when it appears in at least 2 of the 3 batches.
func main() {
	dataDir := "data/vouchers"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	vouchers := map[string][]string{
		"voucherbase1.gz": {
			"CAMPUS2026", // In batches 1 and 2
			"MEALDEAL01", // In batches 1 and 2
			"ALLBATCH01", // In all 3 batches
			"ONLYONE111", // Only in batch 1
			"FRESHER500", // In batches 1 and 3
		},
		"voucherbase2.gz": {
			"CAMPUS2026", // In batches 1 and 2
			"MEALDEAL01", // In batches 1 and 2
			"ALLBATCH01", // In all 3 batches
			"ONLYTWO222", // Only in batch 2
			"EXAMWEEK10", // In batches 2 and 3
		},
		"voucherbase3.gz": {
			"EXAMWEEK10", // In batches 2 and 3
			"FRESHER500", // In batches 1 and 3
			"ALLBATCH01", // In all 3 batches
			"ONLYTHREE3", // Only in batch 3
		},
	}

	for filename, codes := range vouchers {
		filePath := filepath.Join(dataDir, filename)

		if err := createVoucherFile(filePath, codes); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d codes\n", filePath, len(codes))
	}

	fmt.Println("\nSample voucher files created successfully!")
	fmt.Println("\nValid codes (appear in at least 2 batches):")
	fmt.Println("  - CAMPUS2026 (batches 1, 2)")
	fmt.Println("  - MEALDEAL01 (batches 1, 2)")
	fmt.Println("  - ALLBATCH01 (batches 1, 2, 3)")
	fmt.Println("  - FRESHER500 (batches 1, 3)")
	fmt.Println("  - EXAMWEEK10 (batches 2, 3)")
	fmt.Println("\nInvalid codes (appear in only 1 batch):")
	fmt.Println("  - ONLYONE111 (batch 1 only)")
	fmt.Println("  - ONLYTWO222 (batch 2 only)")
	fmt.Println("  - ONLYTHREE3 (batch 3 only)")
}

func createVoucherFile(filePath string, codes []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, code := range codes {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", code); err != nil {
			return fmt.Errorf("failed to write voucher code: %w", err)
		}
	}

	return nil
}
