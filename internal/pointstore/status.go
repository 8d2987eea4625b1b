package pointstore

import (
	"fmt"
	"strings"

	"github.com/gerritlens/gerritlens/schema"
)

// PrintStoreStatus prints point store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Points: %d\n", status.TotalPoints)
	if status.TotalPoints > 0 {
		fmt.Printf("Oldest Point: %s\n", status.OldestPoint.Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest Point: %s\n", status.NewestPoint.Format("2006-01-02 15:04:05"))
	}
	if len(status.Measurements) > 0 {
		fmt.Printf("Measurements: %s\n", strings.Join(status.Measurements, ", "))
	}
}
