package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofmeright/pipewright/src/config"
	"github.com/zricethezav/gitleaks/v8/detect"
)

func init() {
	Register("secrets", func() Kind { return secretsKind{} })
}

// secretsKind scans the worktree for leaked credentials using the gitleaks
// default ruleset. Runs in-process — no external tool to install. Advisory:
// leak reports need human review before they should block anyone.
type secretsKind struct{}

func (secretsKind) Name() string   { return "secrets" }
func (secretsKind) Advisory() bool { return true }

func (secretsKind) Units(tools config.ToolsConfig, _ config.MatrixSpec) ([]Unit, error) {
	roots := tools.SourceDirs
	return []Unit{{
		Job:      "secrets",
		Advisory: true,
		InProcess: func(ctx context.Context, rootDir string) (string, bool, error) {
			return scanSecrets(ctx, rootDir, roots)
		},
	}}, nil
}

func scanSecrets(ctx context.Context, rootDir string, roots []string) (string, bool, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return "", false, err
	}

	var report strings.Builder
	leaks := 0
	scanned := 0

	for _, root := range roots {
		dir := filepath.Join(rootDir, root)
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if d.IsDir() {
				if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			scanned++

			rel, rerr := filepath.Rel(rootDir, path)
			if rerr != nil {
				rel = path
			}
			for _, hit := range detector.DetectBytes(data) {
				leaks++
				fmt.Fprintf(&report, "%s:%d: %s (%s)\n", rel, hit.StartLine+1, hit.Description, hit.RuleID)
			}
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				continue // missing root is not a leak
			}
			return report.String(), false, err
		}
	}

	fmt.Fprintf(&report, "%d files scanned, %d potential leaks\n", scanned, leaks)
	return report.String(), leaks == 0, nil
}
