package iokv

import (
	"fmt"

	"github.com/huangsam/casemap/schema"
)

// PrintStoreStatus prints store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Keys: %d\n", status.Keys)
	fmt.Printf("Store Size: %.1f KB\n", status.SizeKB)
}
