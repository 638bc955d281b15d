package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/the-rolodex-must-flow/internal/contactio"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/Veraticus/the-rolodex-must-flow/internal/normalize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"
)

// newNormalizer builds a field normalizer from configuration.
func newNormalizer() *normalize.Normalizer {
	return normalize.New(normalize.Config{
		Style:  normalize.PhoneStyle(viper.GetString("phone.style")),
		Region: viper.GetString("phone.region"),
	})
}

// loadContacts parses every input file, concatenating the records in
// argument order. A file that fails to parse fails the whole load; no
// partial state is committed.
func loadContacts(paths []string) ([]*model.Contact, error) {
	var bar *progressbar.ProgressBar
	if len(paths) > 1 {
		bar = progressbar.Default(int64(len(paths)), "Importing contact files")
	}

	var contacts []*model.Contact
	for _, path := range paths {
		parsed, err := contactio.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", filepath.Base(path), err)
		}
		contacts = append(contacts, parsed...)

		slog.Info("Imported contact file",
			"file", filepath.Base(path),
			"records", len(parsed))
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return contacts, nil
}

// exportContacts writes contacts to path in the named format.
func exportContacts(path, formatName string, fullSchema bool, contacts []*model.Contact) error {
	var format contactio.Format
	var err error
	if formatName != "" {
		format, err = contactio.ParseFormat(formatName)
	} else {
		format, err = contactio.DetectFormat(path)
	}
	if err != nil {
		return err
	}

	if err := contactio.WriteFile(path, contacts, contactio.ExportOptions{
		Format:     format,
		FullSchema: fullSchema,
	}); err != nil {
		return err
	}

	slog.Info("Exported contacts",
		"file", path,
		"format", string(format),
		"records", len(contacts))
	return nil
}
