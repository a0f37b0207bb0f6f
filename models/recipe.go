package models

// DefaultImage is the sentinel value for a recipe that has no uploaded image yet.
const DefaultImage = "default"

// Comment represents a user comment attached to a recipe.
// ID is sequential within one recipe's comment list, starting at 1.
type Comment struct {
	ID   int    `json:"id"`
	User string `json:"user"`
	Text string `json:"text"`
	Date string `json:"date"`
}

// Recipe represents a recipe entity.
// Image is either DefaultImage or a stored filename that exists in the
// upload storage area.
type Recipe struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Images      []string  `json:"images"`
	Comments    []Comment `json:"comments"`
}

// Clone returns a deep copy of the recipe so callers can't mutate
// repository-owned state through returned pointers.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Steps = append([]string(nil), r.Steps...)
	c.Images = append([]string(nil), r.Images...)
	c.Comments = append([]Comment(nil), r.Comments...)
	return &c
}

// SeedRecipes returns the initial recipe catalog. Recipes are only created
// here; there is no create-recipe operation at runtime.
func SeedRecipes() []*Recipe {
	return []*Recipe{
		{
			ID:          1,
			Name:        "Nasi Goreng Mafia",
			Description: "Pedas gila dengan bumbu rahasia para mafia.",
			Image:       DefaultImage,
			Ingredients: []string{
				"2 piring nasi putih dingin",
				"5 buah cabai rawit merah (ulek kasar)",
				"2 siung bawang putih",
				"Kecap manis secukupnya",
				"1 butir telur ayam",
				"Kerupuk secukupnya",
			},
			Steps: []string{
				"Tumis bawang putih dan cabai hingga harum.",
				"Masukkan telur, orak-arik hingga matang.",
				"Masukkan nasi, aduk rata dengan bumbu.",
				"Tambahkan kecap manis, garam, dan penyedap.",
				"Sajikan dengan kerupuk dan tatapan tajam.",
			},
			Images:   []string{},
			Comments: []Comment{},
		},
		{
			ID:          2,
			Name:        "Smoothie Bowl Naga",
			Description: "Sehat, segar, dan estetik untuk feed Instagram.",
			Image:       DefaultImage,
			Ingredients: []string{
				"1 buah naga merah beku",
				"1 buah pisang beku",
				"100ml susu almond",
				"Topping: Granola, Chia seeds, Kelapa",
			},
			Steps: []string{
				"Blender buah naga, pisang, dan susu hingga halus.",
				"Tuang ke dalam mangkuk kelapa.",
				"Hias dengan topping se-estetik mungkin.",
				"Foto dulu sebelum dimakan.",
			},
			Images:   []string{},
			Comments: []Comment{},
		},
		{
			ID:          3,
			Name:        "Indomie Carbonara",
			Description: "Anak kosan style tapi rasa restoran bintang lima.",
			Image:       DefaultImage,
			Ingredients: []string{
				"1 bungkus Indomie Goreng",
				"100ml susu full cream",
				"Keju cheddar parut",
				"Sosis/Smoked beef",
				"Parsley kering",
			},
			Steps: []string{
				"Rebus mie setengah matang, tiriskan.",
				"Masak susu dan keju hingga mengental.",
				"Masukkan bumbu Indomie dan mie.",
				"Aduk rata hingga creamy.",
				"Sajikan hangat.",
			},
			Images:   []string{},
			Comments: []Comment{},
		},
	}
}
