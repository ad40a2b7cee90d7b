package contestservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportResults renders a contest's entries as an XLSX workbook, one row per
// entry ordered by tally.
func (s *ContestService) ExportResults(ctx context.Context, contestID int64) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.ExportResults")
	defer span.End()

	contest, err := s.repo.GetContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.TopApproved(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []any{"Rank", "Entry ID", "Model ID", "Title", "Votes", "Status", "Submitted At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, entry := range entries {
		rank := i + 1
		if entry.Ranking != nil {
			rank = *entry.Ranking
		}
		row := []any{
			rank,
			entry.ID,
			entry.ModelID,
			entry.Title,
			entry.Votes,
			string(entry.Status),
			entry.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write entry row: %w", err)
		}
	}

	infoSheet := "Contest"
	if _, err := f.NewSheet(infoSheet); err != nil {
		return nil, err
	}
	info := [][]any{
		{"Title", contest.Title},
		{"Status", string(contest.Status)},
		{"Starts", contest.StartsAt.Format("2006-01-02 15:04:05")},
		{"Ends", contest.EndsAt.Format("2006-01-02 15:04:05")},
		{"Winning votes", contest.WinningVotes},
	}
	for i, row := range info {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(infoSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
