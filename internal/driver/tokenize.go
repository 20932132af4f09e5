package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ghostc/internal/diag"
	"ghostc/internal/lexer"
	"ghostc/internal/project"
	"ghostc/internal/source"
	"ghostc/internal/token"
)

type TokenizeResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes one file.
func Tokenize(path string, maxDiagnostics int) (*source.FileSet, *TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return fs, &TokenizeResult{Path: path, FileID: id, Tokens: toks, Bag: bag}, nil
}

// TokenizeDir lexes every source file under dir in parallel.
// Files excluded by .gitignore are skipped.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeResult, error) {
	files, err := project.SourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем файлы последовательно: FileID детерминированы
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobsOrDefault(jobs), len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(maxDiagnostics)
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Location{}, fmt.Sprintf("failed to load file: %v", loadErr)))
				results[i] = TokenizeResult{Path: path, Bag: bag}
				return nil
			}
			id := fileIDs[path]
			toks := lexer.Tokenize(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
			results[i] = TokenizeResult{Path: path, FileID: id, Tokens: toks, Bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
