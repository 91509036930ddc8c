package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ikedam/viewcopy-builder/pkg/config"
)

func ExampleLoad() {
	ctx := context.Background()
	configYAML := `
views_dir: views
copies:
  - from: template-view
    to: ${BRANCH}-view
    operations:
      - type: replace
        from: template-
        to: ${BRANCH}-
        expand_to: true
      - type: set_regex
        regex: ${BRANCH}-.*
`

	tmpDir, err := os.MkdirTemp("", "viewcopy-example")
	if err != nil {
		fmt.Printf("Error creating temp dir: %v\n", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "viewcopy.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	jobs, err := cfg.Jobs()
	if err != nil {
		fmt.Printf("Error building jobs: %v\n", err)
		return
	}

	fmt.Println(cfg)
	for _, job := range jobs {
		fmt.Printf("%s -> %s\n", job.From, job.To)
		for _, op := range job.Operations {
			fmt.Printf("  %s\n", op.ID())
		}
	}

	// Output:
	// 1 copies in views (parallel 1)
	// template-view -> ${BRANCH}-view
	//   replace
	//   set_regex
}
