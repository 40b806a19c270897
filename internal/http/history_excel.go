package httpapi

import (
	"bytes"
	"fmt"

	"github.com/ma-weihao/PokerFaceOff-server/internal/service"

	"github.com/xuri/excelize/v2"
)

// GenerateRoomHistoryExport 生成房间历史 Excel 文件
// 行 = 成员，列 = 回合；单元格为该成员当回合的估点值，未投票留空
func GenerateRoomHistoryExport(history *service.RoomHistoryResponse) ([]byte, error) {
	f := excelize.NewFile()
	// 不能defer Close：WriteTo要求文件仍处于打开状态，出错路径逐处手动关闭

	sheetName := "Estimation History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 表头：Member, Role, Round 1..N
	headers := []string{"Member", "Role"}
	for _, round := range history.Rounds {
		headers = append(headers, fmt.Sprintf("Round %d", round.RoundNumber))
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	// 数据行：每个成员一行
	for rowIdx, member := range history.Members {
		row := rowIdx + 2
		values := []any{member.Username, member.Role}
		for _, round := range history.Rounds {
			vote := ""
			if roundVotes, ok := history.Votes[round.RoundID]; ok {
				vote = roundVotes[member.UserID]
			}
			values = append(values, vote)
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}
