package enrich

// specialProductionNumbers holds curated figures for limited-run cars where
// search results are unreliable. Keys are folded car names.
var specialProductionNumbers = map[string]string{
	"lamborghini veneno":              "14 (5 coupe + 9 roadster)",
	"lamborghini veneno roadster":     "14 (5 coupe + 9 roadster)",
	"lamborghini revuelto":            "10,112 in 2023",
	"lamborghini centenario":          "40",
	"lamborghini reventon":            "21",
	"lamborghini sesto elemento":      "20",
	"lamborghini egoista":             "1",
	"ferrari laferrari":               "500",
	"ferrari fxx k":                   "40",
	"ferrari monza sp1":               "499",
	"ferrari monza sp2":               "499",
	"ferrari f8 tributo":              "2,000 total units",
	"ferrari sf90 stradale":           "799 coupe + 599 spider",
	"ferrari 296 gtb":                 "1,200 units per year",
	"ferrari 488 gtb":                 "7,000 total units",
	"ferrari purosangue":              "3,000 units per year",
	"ferrari roma":                    "2,000 units per year",
	"ferrari 812 competizione":        "999 units",
	"ferrari daytona sp3":             "599 units",
	"bugatti chiron super sport 300+": "30",
	"bugatti la voiture noire":        "1",
	"bugatti centodieci":              "10",
	"koenigsegg jesko absolut":        "125",
	"koenigsegg ccxr trevita":         "3",
	"koenigsegg one:1":                "7",
	"pagani zonda cinque":             "5",
	"pagani huayra bc":                "20",
	"mclaren f1":                      "106",
	"mclaren speedtail":               "106",
	"mclaren senna":                   "500",
	"aston martin valkyrie":           "150",
	"aston martin one-77":             "77",
	"porsche 918 spyder":              "918",
	"porsche carrera gt":              "1,270",
	"rimac nevera":                    "150",
	"hennessey venom f5":              "24",
	"byd seal":                        "khoảng 30,000 xe mỗi năm (ước tính 2023, theo CarNewsChina)",
	"xiaomi su7":                      "khoảng 20,000 xe năm 2024 (ước tính)",
}

// popularBrands are mass-market marques whose production is always in the
// tens of thousands per year. Matched by substring on the folded car name.
var popularBrands = []string{
	"kia", "toyota", "hyundai", "honda", "mazda", "ford", "chevrolet",
	"nissan", "mitsubishi", "suzuki", "volkswagen", "bmw", "audi",
	"mercedes", "lexus", "vinfast", "peugeot", "renault", "fiat", "skoda",
	"seat", "chery", "geely", "byd", "great wall", "dongfeng", "baic",
	"faw", "gac",
}

// brandVariants maps loosely written brand names to the canonical form that
// search engines index logos under.
var brandVariants = map[string]string{
	"mercedes":     "mercedes-benz",
	"rolls royce":  "rolls-royce",
	"aston martin": "aston-martin",
	"land rover":   "land-rover",
	"range rover":  "range-rover",
	"alfa romeo":   "alfa romeo",
	"great wall":   "great-wall",
	"li auto":      "li-auto",
	"lynk & co":    "lynk-co",
}

// logoQueryVariants are tried in order until one query yields a usable image.
var logoQueryVariants = []string{
	"%s logo",
	"%s car logo",
	"%s automotive logo",
	"%s official logo",
	"%s brand logo",
	"%s company logo",
	"%s logo transparent",
	"%s logo vector",
}
