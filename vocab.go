package furnex

// Vocabulary is a fixed set of furniture-domain marker words used by
// the keyword extractor. It is immutable after construction.
type Vocabulary []string

// DefaultVocabulary returns the built-in bilingual furniture
// vocabulary. The list is fixed at compile time; repeated entries in
// the Russian section are harmless since matching is substring-based.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		// English furniture terms
		"sofa", "chair", "table", "bed", "desk", "lamp", "mirror", "cabinet",
		"shelf", "ottoman", "bench", "stool", "dresser", "nightstand", "bookcase",
		"wardrobe", "dining", "living", "bedroom", "office", "kitchen", "bathroom",
		"outdoor", "light", "lighting", "pendant", "ceiling", "wall", "floor",
		"mattress", "pillow", "cushion", "throw", "rug", "curtain", "blind",
		"furniture", "collection", "series", "set", "armchair", "recliner",
		"sectional", "loveseat", "console", "coffee", "side", "accents",

		// Russian furniture terms
		"диван", "стул", "стол", "кровать", "кресло", "лампа", "зеркало", "шкаф",
		"полка", "пуф", "скамья", "табурет", "комод", "тумба", "стеллаж", "гардероб",
		"столовая", "гостиная", "спальня", "офис", "кухня", "ванная", "уличная",
		"свет", "освещение", "подвесной", "потолочный", "настенный", "напольный",
		"матрас", "подушка", "подушка", "ковер", "штора", "жалюзи", "мебель",
		"коллекция", "серия", "комплект", "кресло", "раскладушка", "угловой",
	}
}
