package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forge/internal/store"
)

var (
	indexContent string
	indexPath    string
	indexLabel   string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "chunk and ingest content (or a file) into the content store",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := s.Index(indexContent, indexPath, indexLabel)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexContent, "content", "", "raw content to ingest")
	indexCmd.Flags().StringVar(&indexPath, "path", "", "path to a file to ingest")
	indexCmd.Flags().StringVar(&indexLabel, "label", "", "human label (default: path, else \"untitled\")")
}

func openStore() (*store.Store, error) {
	s, err := store.Open(store.Config{Dir: storeDir})
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}
	return s, nil
}
