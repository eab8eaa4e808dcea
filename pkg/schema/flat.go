package schema

// FlatPair is the flattened row shape used for Parquet, CSV and Arrow
// exports of a finalized dataset.
type FlatPair struct {
	SystemPrompt    string `parquet:"name=system_prompt, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" json:"system_prompt"`
	Question        string `parquet:"name=question, type=BYTE_ARRAY, convertedtype=UTF8" json:"question"`
	Chosen          string `parquet:"name=chosen, type=BYTE_ARRAY, convertedtype=UTF8" json:"chosen"`
	Rejected        string `parquet:"name=rejected, type=BYTE_ARRAY, convertedtype=UTF8" json:"rejected"`
	RecipeID        int32  `parquet:"name=recipe_id, type=INT32" json:"recipe_id"`
	RecipeName      string `parquet:"name=recipe_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" json:"recipe_name"`
	Category        string `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" json:"category"`
	DifficultyLevel string `parquet:"name=difficulty_level, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" json:"difficulty_level"`
}
