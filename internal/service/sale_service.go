package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"auraops/internal/dto"
	"auraops/internal/model"
	"auraops/internal/repository"
	"auraops/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SaleService orchestrates one checkout: it invokes the deduction resolver
// once per line item, accumulates logs and errors across lines, computes the
// financial rollup and persists exactly one Sale record per transaction.
type SaleService interface {
	Process(ctx context.Context, req dto.ProcessSaleRequest) (*dto.SaleResult, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	deduction  DeductionService
	dispatcher *worker.Dispatcher
	prefix     string
}

func NewSaleService(
	repo repository.SaleRepository,
	deduction DeductionService,
	dispatcher *worker.Dispatcher,
	prefix string,
) SaleService {
	return &saleService{
		repo:       repo,
		deduction:  deduction,
		dispatcher: dispatcher,
		prefix:     prefix,
	}
}

// ── Process ───────────────────────────────────────────────────────────────────
// Strictly sequential: each resolver call completes before the next line is
// considered. Per-line deduction failures do not stop the remaining lines and
// do not stop the financial totals — the Sale is still created, flagged
// stock_deducted=false and carrying a warnings string.

func (s *saleService) Process(ctx context.Context, req dto.ProcessSaleRequest) (*dto.SaleResult, error) {
	// Fatal to the whole transaction — no Sale record is created.
	if len(req.Items) == 0 {
		return nil, errors.New("a sale requires at least one line item")
	}

	num, err := s.repo.NextSaleNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocating sale number: %w", err)
	}
	saleNumber := fmt.Sprintf("%s-%06d", s.prefix, num)

	saleType := req.SaleType
	if saleType == "" {
		saleType = "dine_in"
	}

	var (
		deductionResults []dto.DeductionResult
		allLogs          []dto.DeductionLogEntry
		warnings         []string
		items            []model.SaleItem
		lowStock         = map[string]bool{}
		subtotal         = decimal.Zero
		totalCost        = decimal.Zero
		hasErrors        bool
	)

	// The Sale id is allocated up front so movement rows written during
	// resolution can reference it.
	saleID := uuid.New()

	for _, line := range req.Items {
		name := "Unknown item"
		unitPrice := decimal.Zero
		unitCost := decimal.Zero

		// A malformed id degrades exactly like a missing menu item: the line
		// is recorded with zero price, the remaining lines keep processing and
		// the Sale is still persisted as the audit record of whatever was
		// deducted before this line.
		var (
			menuItemRef *uuid.UUID
			res         *dto.DeductionResult
			err         error
		)
		if itemID, parseErr := uuid.Parse(line.MenuItemID); parseErr != nil {
			err = fmt.Errorf("invalid menu item id %q", line.MenuItemID)
		} else {
			menuItemRef = &itemID
			res, err = s.deduction.Resolve(ctx, itemID, line.Quantity, &saleID)
		}
		if err != nil {
			// Fatal to that resolver call only: record it, keep processing the
			// remaining lines, degrade pricing to zero for this one.
			hasErrors = true
			warnings = append(warnings, err.Error())
			deductionResults = append(deductionResults, dto.DeductionResult{
				Success:      false,
				MenuItemID:   line.MenuItemID,
				MenuItemName: name,
				QuantitySold: line.Quantity,
				DeductionLog: []dto.DeductionLogEntry{},
				Errors:       []string{err.Error()},
			})
		} else {
			deductionResults = append(deductionResults, *res)
			allLogs = append(allLogs, res.DeductionLog...)
			name = res.MenuItemName
			unitPrice = res.UnitPrice
			unitCost = res.UnitCost
			if !res.Success {
				hasErrors = true
				warnings = append(warnings, res.Errors...)
			}
			for _, id := range res.LowStock {
				lowStock[id] = true
			}
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		linePrice := unitPrice.Mul(qty)
		lineCost := unitCost.Mul(qty)
		subtotal = subtotal.Add(linePrice)
		totalCost = totalCost.Add(lineCost)

		items = append(items, model.SaleItem{
			MenuItemID:   menuItemRef,
			MenuItemName: name,
			Quantity:     line.Quantity,
			UnitPrice:    unitPrice,
			UnitCost:     unitCost,
			TotalPrice:   linePrice,
			TotalCost:    lineCost,
		})
	}

	grossProfit := subtotal.Sub(totalCost)
	gpPercent := decimal.Zero
	if !subtotal.IsZero() {
		gpPercent = grossProfit.Div(subtotal).Mul(hundred).Round(2)
	}

	if allLogs == nil {
		allLogs = []dto.DeductionLogEntry{}
	}
	logJSON, err := json.Marshal(allLogs)
	if err != nil {
		return nil, fmt.Errorf("serializing deduction log: %w", err)
	}

	sale := model.Sale{
		ID:            saleID,
		SaleNumber:    saleNumber,
		SaleType:      saleType,
		Subtotal:      subtotal,
		TotalCost:     totalCost,
		GrossProfit:   grossProfit,
		GPPercent:     gpPercent,
		StockDeducted: !hasErrors,
		DeductionLog:  string(logJSON),
		StaffEmail:    req.StaffEmail,
		StaffName:     req.StaffName,
		Items:         items,
	}
	var warningStr *string
	if hasErrors {
		w := strings.Join(warnings, "; ")
		sale.Warnings = &w
		warningStr = &w
	}

	if err := s.repo.Create(ctx, &sale); err != nil {
		return nil, err
	}

	// Low-stock alerts are best-effort — fire & forget.
	if s.dispatcher != nil {
		for id := range lowStock {
			if err := s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockJobPayload{IngredientID: id}); err != nil {
				log.Warn().Err(err).Str("ingredient_id", id).Msg("sale: failed to enqueue low-stock alert")
			}
		}
	}

	return &dto.SaleResult{
		Success:          !hasErrors,
		Sale:             *saleToResponse(&sale),
		DeductionResults: deductionResults,
		Warnings:         warningStr,
	}, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			UnitCost:     item.UnitCost,
			TotalPrice:   item.TotalPrice,
			TotalCost:    item.TotalCost,
		})
	}
	logEntries := []dto.DeductionLogEntry{}
	if s.DeductionLog != "" {
		if err := json.Unmarshal([]byte(s.DeductionLog), &logEntries); err != nil {
			log.Warn().Err(err).Str("sale_id", s.ID.String()).Msg("sale: malformed deduction log")
		}
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		SaleNumber:    s.SaleNumber,
		SaleType:      s.SaleType,
		Items:         items,
		Subtotal:      s.Subtotal,
		TotalCost:     s.TotalCost,
		GrossProfit:   s.GrossProfit,
		GPPercent:     s.GPPercent,
		StockDeducted: s.StockDeducted,
		DeductionLog:  logEntries,
		StaffEmail:    s.StaffEmail,
		StaffName:     s.StaffName,
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
