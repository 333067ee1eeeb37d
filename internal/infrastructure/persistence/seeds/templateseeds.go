// Package seeds installs the default message templates.
package seeds

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

//go:embed templates.yaml
var defaultTemplatesYAML []byte

type TemplateSeed struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Content   string   `yaml:"content"`
	Variables []string `yaml:"variables"`
}

type seedFile struct {
	Templates []TemplateSeed `yaml:"templates"`
}

// DefaultTemplates parses the embedded seed file.
func DefaultTemplates() ([]TemplateSeed, error) {
	return ParseTemplates(defaultTemplatesYAML)
}

func ParseTemplates(data []byte) ([]TemplateSeed, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse template seeds: %w", err)
	}
	return f.Templates, nil
}

// TransactionRunner runs fn in a single database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SeedTemplates inserts each seed whose type has no active template yet and
// returns how many were created. All inserts share one transaction.
func SeedTemplates(
	ctx context.Context,
	tm TransactionRunner,
	repo messagetemplate.Repository,
	seeds []TemplateSeed,
	log logger.Interface,
) (int, error) {
	created := 0

	err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
		created = 0
		for _, seed := range seeds {
			tt := messagetemplate.TemplateType(seed.Type)

			existing, err := repo.GetActiveByType(ctx, tt)
			if err != nil {
				return err
			}
			if existing != nil {
				log.Infow("template already present, skipping seed", "template_type", seed.Type, "id", existing.ID())
				continue
			}

			template, err := messagetemplate.NewMessageTemplate(seed.Name, tt, seed.Content, seed.Variables, "seed")
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", seed.Name, err)
			}
			if err := repo.Create(ctx, template); err != nil {
				return err
			}

			log.Infow("seeded message template", "template_type", seed.Type, "id", template.ID())
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
