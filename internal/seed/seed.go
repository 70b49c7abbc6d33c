// Package seed creates a sample project for demos and manual testing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	docsysSvc "contractpad/internal/domain/services/docsystem"
)

// SampleProjectName is the name of the seeded project
const SampleProjectName = "Sample Vault"

type seedDocument struct {
	name    string
	path    string
	content *string // nil = kind template
}

func text(s string) *string { return &s }

// sampleDocuments trip several of the built-in review rules on purpose
var sampleDocuments = []seedDocument{
	{
		name: "Vault.sol",
		path: "contracts/Vault.sol",
		content: text(`// SPDX-License-Identifier: MIT
pragma solidity ^0.8.20;

contract Vault {
    address owner;
    mapping(address => uint) balances;

    constructor() {
        owner = msg.sender;
    }

    function deposit() public payable {
        balances[msg.sender] += msg.value;
    }

    function sweep(address payable[] memory to) public {
        require(tx.origin == owner);
        for (uint256 i = 0; i < to.length; i++) {
            to[i].send(balances[to[i]]);
        }
    }
}
`),
	},
	{name: "Adder.sol", path: "contracts/Adder.sol"},
	{name: "adder.vy", path: "contracts/adder.vy"},
	{
		name: "README.md",
		content: text(`# Sample Vault

Ask the assistant to review contracts/Vault.sol.

TODO: add deployment notes
`),
	},
}

// Seeder creates sample data through the regular services, so seeded
// documents get their initial history entries like any other
type Seeder struct {
	projects docsysSvc.ProjectService
	docs     docsysSvc.DocumentService
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(projects docsysSvc.ProjectService, docs docsysSvc.DocumentService, logger *slog.Logger) *Seeder {
	return &Seeder{
		projects: projects,
		docs:     docs,
		logger:   logger,
	}
}

// SeedSample creates the sample project and its documents. Returns the
// existing project untouched if it was already seeded.
func (s *Seeder) SeedSample(ctx context.Context) (*models.Project, error) {
	project, err := s.projects.CreateProject(ctx, &docsysSvc.CreateProjectRequest{
		Name:        SampleProjectName,
		Description: "Contracts with a few deliberate review findings",
	})
	if err != nil {
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			s.logger.Info("sample project already exists", "id", conflictErr.ResourceID)
			return s.projects.GetProject(ctx, conflictErr.ResourceID)
		}
		return nil, fmt.Errorf("create sample project: %w", err)
	}

	for _, d := range sampleDocuments {
		doc, err := s.docs.CreateDocument(ctx, &docsysSvc.CreateDocumentRequest{
			ProjectID: project.ID,
			Name:      d.name,
			Path:      d.path,
			Content:   d.content,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", d.name, err)
		}
		s.logger.Info("document seeded",
			"id", doc.ID,
			"path", doc.Path,
			"kind", doc.Kind,
		)
	}

	return project, nil
}

// ClearAll deletes every project, with their documents and histories.
// Returns how many projects were removed.
func (s *Seeder) ClearAll(ctx context.Context) (int, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range projects {
		if err := s.projects.DeleteProject(ctx, p.ID); err != nil {
			return 0, fmt.Errorf("delete project %s: %w", p.ID, err)
		}
	}
	return len(projects), nil
}
