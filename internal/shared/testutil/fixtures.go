package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"pvpulse/pkg/contracts/domain"
)

// SampleCSV is a small observation history covering two products over
// three publication days, in the source feed's column layout.
const SampleCSV = `Ngày,Mặt hàng,Giá (VND)
1/3/2024,Xăng RON 95-III,23540
1/3/2024,"Dầu DO 0,05S-II",20450
15/3/2024,Xăng RON 95-III,23910
15/3/2024,"Dầu DO 0,05S-II",20730
29/3/2024,Xăng RON 95-III,24280
`

// Record builds a price record from a display date string.
func Record(t *testing.T, date, product string, price float64) domain.PriceRecord {
	t.Helper()
	d := domain.ParseDay(date)
	if !d.IsValid() {
		t.Fatalf("bad fixture date %q", date)
	}
	return domain.PriceRecord{Date: d, Product: product, Price: price}
}

// WriteTempCSV writes content into a temp file and returns its path.
func WriteTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// Catalog returns a two-product catalog for tests.
func Catalog() []domain.CatalogProduct {
	return []domain.CatalogProduct{
		{Name: "Xăng RON 95-III", Code: "ron95", Color: "#EF4444", Icon: "⛽"},
		{Name: "Dầu DO 0,05S-II", Code: "do", Color: "#10B981", Icon: "🛢️"},
	}
}
