package catalog

// Closed enumerations for the details step. Values are the stored keys;
// labels are presentation-side.
var Nationalities = []string{
	"algerian", "argentinian", "bangladeshi", "brazilian", "british", "caribbean",
	"chinese", "french", "german", "ghanaian", "greek", "indian", "irish",
	"italian", "japanese", "korean", "lebanese", "moroccan", "nigerian",
	"pakistani", "persian", "polish", "portuguese", "russian", "scottish",
	"south_african", "spanish", "sri_lankan", "turkish", "vietnamese", "welsh",
}

var EyeColors = []string{"black", "blue", "brown", "green", "grey", "hazel"}

var HairColors = []string{"black", "blonde", "brown", "grey", "red", "white"}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func IsValidNationality(v string) bool { return contains(Nationalities, v) }
func IsValidEyeColor(v string) bool    { return contains(EyeColors, v) }
func IsValidHairColor(v string) bool   { return contains(HairColors, v) }
