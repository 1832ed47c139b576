package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/penwright/blog/internal/post"
)

const schemaURL = "posts.schema.json"

//go:embed fixtures/posts.schema.json
var fixtureSchema []byte

//go:embed fixtures/demo.yaml
var demoFixture []byte

type fixtureFile struct {
	Posts []fixturePost `yaml:"posts"`
}

type fixturePost struct {
	Title              string  `yaml:"title"`
	Category           string  `yaml:"category"`
	SnippetDescription string  `yaml:"snippet_description"`
	FirstPartContent   string  `yaml:"first_part_of_content"`
	SecondPartContent  *string `yaml:"second_part_of_content"`
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(fixtureSchema)); err != nil {
		return nil, fmt.Errorf("add fixture schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile fixture schema: %w", err)
	}
	return schema, nil
}

// LoadFixture parses a YAML post fixture, validates it against the fixture
// schema and returns the posts in file order.
func LoadFixture(data []byte) ([]post.Input, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	// The validator expects JSON-shaped values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize fixture: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("normalize fixture: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(normalized); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	inputs := make([]post.Input, 0, len(file.Posts))
	for _, p := range file.Posts {
		inputs = append(inputs, post.Input{
			Title:              p.Title,
			Category:           p.Category,
			SnippetDescription: p.SnippetDescription,
			FirstPartContent:   p.FirstPartContent,
			SecondPartContent:  p.SecondPartContent,
		})
	}
	return inputs, nil
}
