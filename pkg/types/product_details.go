package types

// ProductDetails is the category-tagged attribute block returned with a
// product view. Exactly one of the variant pointers is set, matching the
// Category tag.
type ProductDetails struct {
	Category string          `json:"category"`
	Desktop  *DesktopDetails `json:"desktop,omitempty"`
	Laptop   *LaptopDetails  `json:"laptop,omitempty"`
	Printer  *PrinterDetails `json:"printer,omitempty"`
}

type DesktopDetails struct {
	CPUType string `json:"cpu_type"`
}

type LaptopDetails struct {
	CPUType     string `json:"cpu_type"`
	BatteryType string `json:"battery_type"`
	WeightGrams int    `json:"weight_grams"`
}

type PrinterDetails struct {
	PrinterType string `json:"printer_type"`
	Resolution  string `json:"resolution"`
}
