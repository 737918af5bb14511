// Command generate-schema emits a JSON schema for the objsync
// configuration file, for editor completion and CI validation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/cubbit/objsync/pkg/config"
)

func main() {
	output := flag.String("output", "config.schema.json", "Path of the generated schema file")
	flag.Parse()

	// A positional argument also names the output file, so
	// `generate-schema FILE` keeps working.
	if flag.NArg() > 0 {
		*output = flag.Arg(0)
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true, // inline all definitions
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Title = "objsync Configuration"
	schema.Description = "Configuration schema for the objsync command"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}

	fmt.Printf("JSON schema written to %s\n", *output)
}
