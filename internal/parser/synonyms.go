package parser

// Scalar field targets for key/value lines.
type fieldKey int

const (
	fieldNone fieldKey = iota
	fieldBrand
	fieldModel
	fieldYear
	fieldPrice
	fieldDescription
	fieldPower
	fieldAcceleration
	fieldTopSpeed
	fieldNumberProduced
	fieldRarity
	fieldFeatures
	fieldEngineOpen   // opens the engine section and keeps the line
	fieldInteriorOpen // opens the interior section and keeps the line
)

// scalarSynonyms maps lowercased "key:" labels from both language variants
// to their field. Matching is exact on the folded key text.
var scalarSynonyms = map[string]fieldKey{
	"brand":        fieldBrand,
	"hãng":         fieldBrand,
	"tên hãng":     fieldBrand,
	"model":        fieldModel,
	"mẫu xe":       fieldModel,
	"tên mẫu xe":   fieldModel,
	"year":         fieldYear,
	"năm":          fieldYear,
	"năm sản xuất": fieldYear,
	"price":        fieldPrice,
	"giá":          fieldPrice,
	"overview":     fieldDescription,
	"tổng quan":    fieldDescription,
	"mô tả":        fieldDescription,
	"power":        fieldPower,
	"công suất":    fieldPower,

	"acceleration":        fieldAcceleration,
	"0-60 mph":            fieldAcceleration,
	"0-100 km/h":          fieldAcceleration,
	"tăng tốc":            fieldAcceleration,
	"tăng tốc 0-100 km/h": fieldAcceleration,
	"top speed":           fieldTopSpeed,
	"tốc độ tối đa":       fieldTopSpeed,
	"number produced":     fieldNumberProduced,
	"số lượng sản xuất":   fieldNumberProduced,
	"rarity":              fieldRarity,
	"độ hiếm":             fieldRarity,
	"key features":        fieldFeatures,
	"tính năng nổi bật":   fieldFeatures,
	"configuration":       fieldEngineOpen,
	"cấu hình":            fieldEngineOpen,
	"seating":             fieldInteriorOpen,
	"ghế ngồi":            fieldInteriorOpen,
}

// Free-text sections opened by "Header:" lines.
type section int

const (
	sectionNone section = iota
	sectionOverview
	sectionEngine
	sectionInterior
	sectionFeatures
)

// sectionHeaders route known section headers in both languages. Matched by
// substring so decorated headers ("Interior & Features") still hit.
var sectionHeaders = []struct {
	marker string
	sec    section
}{
	{"overview", sectionOverview},
	{"tổng quan", sectionOverview},
	{"engine details", sectionEngine},
	{"chi tiết động cơ", sectionEngine},
	{"interior", sectionInterior},
	{"nội thất", sectionInterior},
	{"key features", sectionFeatures},
	{"tính năng nổi bật", sectionFeatures},
}

// Performance bullet sub-keys, matched independent of the open section
// because the model sometimes emits figures as bullets outside Performance.
var (
	powerMarkers = []string{"power", "công suất"}
	accelMarkers = []string{"0-60", "0-100", "tăng tốc"}
	speedMarkers = []string{"top speed", "tốc độ tối đa"}
)
