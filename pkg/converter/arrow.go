package converter

import (
	"fmt"
	"log"
	"os"

	"github.com/apache/arrow/go/arrow"
	"github.com/apache/arrow/go/arrow/array"
	"github.com/apache/arrow/go/arrow/ipc"
	"github.com/apache/arrow/go/arrow/memory"

	"gastronomia/pkg/schema"
)

// FlatPairArrowSchema returns the Arrow schema for flattened DPO rows.
func FlatPairArrowSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "system_prompt", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "question", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "chosen", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "rejected", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "recipe_id", Type: arrow.PrimitiveTypes.Int32, Nullable: false},
		{Name: "recipe_name", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "category", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "difficulty_level", Type: arrow.BinaryTypes.String, Nullable: false},
	}, nil)
}

// WriteArrowIPC writes flat rows to an Arrow IPC file.
func WriteArrowIPC(rows []schema.FlatPair, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create Arrow output: %w", err)
	}
	defer file.Close()

	arrowSchema := FlatPairArrowSchema()
	w := ipc.NewWriter(file, ipc.WithSchema(arrowSchema))
	defer w.Close()

	batch := flatPairsToArrowBatch(rows, memory.NewGoAllocator())
	defer batch.Release()

	if err := w.Write(batch); err != nil {
		return fmt.Errorf("failed to write Arrow batch: %w", err)
	}

	log.Printf("✅ Wrote %d rows to %s", len(rows), outputPath)
	return nil
}

// flatPairsToArrowBatch converts flat rows to an Arrow record batch.
func flatPairsToArrowBatch(rows []schema.FlatPair, mem memory.Allocator) array.Record {
	arrowSchema := FlatPairArrowSchema()

	systemBuilder := array.NewStringBuilder(mem)
	defer systemBuilder.Release()

	questionBuilder := array.NewStringBuilder(mem)
	defer questionBuilder.Release()

	chosenBuilder := array.NewStringBuilder(mem)
	defer chosenBuilder.Release()

	rejectedBuilder := array.NewStringBuilder(mem)
	defer rejectedBuilder.Release()

	recipeIDBuilder := array.NewInt32Builder(mem)
	defer recipeIDBuilder.Release()

	recipeNameBuilder := array.NewStringBuilder(mem)
	defer recipeNameBuilder.Release()

	categoryBuilder := array.NewStringBuilder(mem)
	defer categoryBuilder.Release()

	difficultyBuilder := array.NewStringBuilder(mem)
	defer difficultyBuilder.Release()

	for _, row := range rows {
		systemBuilder.Append(row.SystemPrompt)
		questionBuilder.Append(row.Question)
		chosenBuilder.Append(row.Chosen)
		rejectedBuilder.Append(row.Rejected)
		recipeIDBuilder.Append(row.RecipeID)
		recipeNameBuilder.Append(row.RecipeName)
		categoryBuilder.Append(row.Category)
		difficultyBuilder.Append(row.DifficultyLevel)
	}

	systemArr := systemBuilder.NewArray()
	defer systemArr.Release()

	questionArr := questionBuilder.NewArray()
	defer questionArr.Release()

	chosenArr := chosenBuilder.NewArray()
	defer chosenArr.Release()

	rejectedArr := rejectedBuilder.NewArray()
	defer rejectedArr.Release()

	recipeIDArr := recipeIDBuilder.NewArray()
	defer recipeIDArr.Release()

	recipeNameArr := recipeNameBuilder.NewArray()
	defer recipeNameArr.Release()

	categoryArr := categoryBuilder.NewArray()
	defer categoryArr.Release()

	difficultyArr := difficultyBuilder.NewArray()
	defer difficultyArr.Release()

	var cols []array.Interface
	cols = append(cols, systemArr, questionArr, chosenArr, rejectedArr, recipeIDArr, recipeNameArr, categoryArr, difficultyArr)

	return array.NewRecord(arrowSchema, cols, int64(len(rows)))
}

// JSONToArrow flattens a dataset JSON file into an Arrow IPC file.
func JSONToArrow(inputPath, outputPath string) error {
	pairs, err := schema.LoadPairs(inputPath)
	if err != nil {
		return err
	}
	return WriteArrowIPC(Flatten(pairs), outputPath)
}
