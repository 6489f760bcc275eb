package pipeline

import (
	"errors"
	"io"
	"io/fs"

	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/workflow"
)

// LoadDocument reads and validates the workflow document at path.
func LoadDocument(path string) (*workflow.Document, error) {
	if err := flerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	doc, err := workflow.ImportJSON(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, flerrors.Wrap(flerrors.ErrCodeFileNotFound, err, "workflow %s", path)
		}
		return nil, flerrors.Wrap(flerrors.ErrCodeInvalidDocument, err, "read %s", path)
	}
	return doc, nil
}

// ReadDocument reads and validates a workflow document from r.
func ReadDocument(r io.Reader) (*workflow.Document, error) {
	doc, err := workflow.ReadJSON(r)
	if err != nil {
		return nil, flerrors.Wrap(flerrors.ErrCodeInvalidDocument, err, "read workflow")
	}
	return doc, nil
}

// SaveDocument writes doc to path.
func SaveDocument(doc *workflow.Document, path string) error {
	if err := flerrors.ValidatePath(path); err != nil {
		return err
	}
	if err := workflow.ExportJSON(doc, path); err != nil {
		return flerrors.Wrap(flerrors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
