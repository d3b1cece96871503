package main

import (
	"fmt"

	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/render"
	"github.com/senyabanana/records-browser/internal/services"

	"github.com/spf13/cobra"
)

var (
	fetchPage     int
	fetchPageSize int
	fetchFilters  models.Filters
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Загрузить одну страницу записей и вывести таблицу в терминал",
	Example: `  records-browser fetch --page 2 --page-size 25
  records-browser fetch --department lima --buyer salud`,
	RunE: runFetch,
}

func init() {
	flags := fetchCmd.Flags()
	flags.IntVar(&fetchPage, "page", 1, "номер страницы")
	flags.IntVar(&fetchPageSize, "page-size", 0, "размер страницы (по умолчанию DEFAULT_PAGE_SIZE)")
	flags.StringVar(&fetchFilters.Classification, "unspsc", "", "фильтр по коду или описанию UNSPSC")
	flags.StringVar(&fetchFilters.Department, "department", "", "фильтр по департаменту")
	flags.StringVar(&fetchFilters.Buyer, "buyer", "", "фильтр по закупающей организации")
	flags.StringVar(&fetchFilters.Description, "description", "", "фильтр по названию или описанию")
}

func runFetch(cmd *cobra.Command, args []string) error {
	pageSize := fetchPageSize
	if pageSize == 0 {
		pageSize = cfg.DefaultPageSize
	}

	repo, closeRepo, err := newRecordsRepository(cmd.Context())
	if err != nil {
		return err
	}
	defer closeRepo()

	result, err := services.NewRecordsService(repo).FetchRecords(cmd.Context(), fetchPage, pageSize, fetchFilters)
	if err != nil {
		return fmt.Errorf("%s: %w", render.FetchFailed, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Table(render.BuildRows(result.Records), render.NoResults))
	fmt.Fprintln(out, result.Summary.Text())
	fmt.Fprintln(out, result.Summary.PageInfo(result.Page))
	return nil
}
