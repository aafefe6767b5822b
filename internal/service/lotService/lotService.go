package lotService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/data/cache"
	"github.com/KotFed0t/lot_allocator/data/lock"
	"github.com/KotFed0t/lot_allocator/data/repository"
	"github.com/KotFed0t/lot_allocator/internal/allocation"
	"github.com/KotFed0t/lot_allocator/internal/externalApi"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/moexModel"
	"github.com/KotFed0t/lot_allocator/internal/service"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const syncSplitsConcurrency = 4

type Repository interface {
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error
	UpsertSecurity(ctx context.Context, security model.Security) error
	GetSecurity(ctx context.Context, ticker string) (model.Security, error)
	GetSecurities(ctx context.Context) ([]model.Security, error)
	InsertLot(ctx context.Context, lot model.Lot) (lotID int64, err error)
	GetOpenLots(ctx context.Context, ticker string) ([]model.Lot, error)
	GetOpenLotsForUpdate(ctx context.Context, ticker string) ([]model.Lot, error)
	UpdateLotAllocatedShares(ctx context.Context, lotID int64, allocatedShares decimal.Decimal) error
	GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error)
	UpsertSplits(ctx context.Context, splits []model.StockSplit) error
	InsertSale(ctx context.Context, sale model.Sale) (saleID int64, err error)
	InsertSaleAllocations(ctx context.Context, allocations []model.SaleAllocation) error
	GetRealizedGains(ctx context.Context) ([]model.RealizedGain, error)
}

type Cache interface {
	GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error)
	SetSplits(ctx context.Context, ticker string, splits []model.StockSplit) error
	FlushSplits(ctx context.Context, tickers ...string) error
	GetOpenLots(ctx context.Context, ticker string, asOf time.Time) (model.OpenLotsSummary, error)
	SetOpenLots(ctx context.Context, summary model.OpenLotsSummary) error
	FlushOpenLots(ctx context.Context, ticker string) error
}

type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type Session interface {
	GetSession(ctx context.Context, chatID int64) (model.Session, error)
	SetSession(ctx context.Context, chatID int64, session model.Session) error
}

type MoexApi interface {
	GetSecurityInfo(ctx context.Context, ticker string) (moexModel.SecurityInfo, error)
	GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, gains []model.RealizedGain) (fileBytes []byte, fileExtension string, err error)
}

type CloudStorage interface {
	UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error)
	DeleteOldFiles(ctx context.Context) (deletedFiles int, err error)
}

type LotService struct {
	cfg             *config.Config
	repo            Repository
	cache           Cache
	locker          Locker
	session         Session
	moexApi         MoexApi
	reportGenerator ReportGenerator
	cloudStorage    CloudStorage
	now             func() time.Time
}

// New builds the service. cloudStorage may be nil, reports are then returned as files.
func New(
	cfg *config.Config,
	repo Repository,
	cache Cache,
	locker Locker,
	session Session,
	moexApi MoexApi,
	reportGenerator ReportGenerator,
	cloudStorage CloudStorage,
) *LotService {
	return &LotService{
		cfg:             cfg,
		repo:            repo,
		cache:           cache,
		locker:          locker,
		session:         session,
		moexApi:         moexApi,
		reportGenerator: reportGenerator,
		cloudStorage:    cloudStorage,
		now:             time.Now,
	}
}

func (s *LotService) RecordPurchase(ctx context.Context, req model.PurchaseRequest) (lot model.Lot, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.RecordPurchase"

	slog.Debug("RecordPurchase start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", req.Ticker))
	defer func() {
		slog.Debug("RecordPurchase finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", req.Ticker))
	}()

	req.Ticker = normalizeTicker(req.Ticker)
	req.Date = s.dateOrToday(req.Date)

	if req.Ticker == "" || req.Shares.Sign() <= 0 || req.Price.Sign() < 0 {
		return model.Lot{}, fmt.Errorf("%w: ticker, positive shares and non negative price are required", service.ErrInvalidRequest)
	}

	created, err := s.ensureSecurity(ctx, req.Ticker)
	if err != nil {
		return model.Lot{}, err
	}

	lot = model.Lot{
		Ticker:          req.Ticker,
		PurchaseDate:    req.Date,
		PurchasePrice:   req.Price,
		TotalShares:     req.Shares,
		AllocatedShares: decimal.Zero,
	}

	lot.ID, err = s.repo.InsertLot(ctx, lot)
	if err != nil {
		slog.Error("got error from repo.InsertLot", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Lot{}, err
	}

	if created {
		if err := s.syncSecuritySplits(ctx, req.Ticker); err != nil {
			slog.Warn("can't load splits of new security", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}

	s.flushOpenLots(ctx, req.Ticker)

	return lot, nil
}

// ensureSecurity registers ticker on first use, taking its name from MOEX when available.
func (s *LotService) ensureSecurity(ctx context.Context, ticker string) (created bool, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.ensureSecurity"

	_, err = s.repo.GetSecurity(ctx, ticker)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		slog.Error("got error from repo.GetSecurity", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return false, err
	}

	security := model.Security{Ticker: ticker, Scale: model.DefaultScale}

	info, err := s.moexApi.GetSecurityInfo(ctx, ticker)
	switch {
	case errors.Is(err, externalApi.ErrNotFound):
		slog.Warn("security not found in moexApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))
		return false, fmt.Errorf("%w: ticker %s", service.ErrNotFound, ticker)
	case err != nil:
		slog.Warn("can't get security info from moexApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	default:
		security.Shortname = info.Shortname
	}

	if err = s.repo.UpsertSecurity(ctx, security); err != nil {
		slog.Error("got error from repo.UpsertSecurity", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return false, err
	}

	return true, nil
}

// RecordSale allocates the sold shares to open lots and stores the sale.
// Nothing is stored when the open lots can't cover the sale.
func (s *LotService) RecordSale(ctx context.Context, req model.SaleRequest) (res model.SaleResult, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.RecordSale"

	slog.Debug("RecordSale start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", req.Ticker))
	defer func() {
		slog.Debug("RecordSale finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", req.Ticker))
	}()

	req.Ticker = normalizeTicker(req.Ticker)
	req.Date = s.dateOrToday(req.Date)

	if req.Ticker == "" || req.Shares.Sign() <= 0 || req.Price.Sign() < 0 {
		return model.SaleResult{}, fmt.Errorf("%w: ticker, positive shares and non negative price are required", service.ErrInvalidRequest)
	}

	strategy, err := s.resolveStrategy(ctx, req.ChatID, req.Strategy)
	if err != nil {
		return model.SaleResult{}, err
	}

	security, err := s.getSecurity(ctx, req.Ticker)
	if err != nil {
		return model.SaleResult{}, err
	}

	unlock, err := s.locker.Lock(ctx, lock.Key(req.Ticker))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return model.SaleResult{}, service.ErrLocked
		}
		slog.Error("got error from locker.Lock", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.SaleResult{}, err
	}
	defer unlock()

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		lots, err := s.repo.GetOpenLotsForUpdate(ctx, req.Ticker)
		if err != nil {
			slog.Error("got error from repo.GetOpenLotsForUpdate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		splits, err := s.getSplits(ctx, req.Ticker)
		if err != nil {
			return err
		}

		view := adjustLots(lots, splits, req.Date, security.Scale)
		alreadyAllocated := utils.SumDecimals(view.lots, func(l model.Lot) decimal.Decimal { return l.AllocatedShares })

		plan := strategy.Plan(view.lots, alreadyAllocated.Add(req.Shares))
		if plan.HasShortfall() {
			return fmt.Errorf("%w: %s short of %s", service.ErrInsufficientShares, plan.Shortfall, req.Shares)
		}

		res.Sale = model.Sale{
			Ticker:   req.Ticker,
			SaleDate: req.Date,
			Shares:   req.Shares,
			Price:    req.Price,
			Strategy: strategy.String(),
		}

		res.Sale.ID, err = s.repo.InsertSale(ctx, res.Sale)
		if err != nil {
			slog.Error("got error from repo.InsertSale", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		res.Allocations = make([]model.SaleAllocation, 0, len(plan.Allocations))
		for _, a := range plan.Allocations {
			saleAlloc, allocated := view.saleAllocation(a, req.Price, security.Scale)
			saleAlloc.SaleID = res.Sale.ID

			err = s.repo.UpdateLotAllocatedShares(ctx, saleAlloc.LotID, allocated)
			if err != nil {
				slog.Error("got error from repo.UpdateLotAllocatedShares", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
				return err
			}

			res.Allocations = append(res.Allocations, saleAlloc)
		}

		err = s.repo.InsertSaleAllocations(ctx, res.Allocations)
		if err != nil {
			slog.Error("got error from repo.InsertSaleAllocations", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		return nil
	})
	if err != nil {
		return model.SaleResult{}, err
	}

	res.Cost = utils.SumDecimals(res.Allocations, func(a model.SaleAllocation) decimal.Decimal { return a.Cost })
	res.Proceeds = utils.SumDecimals(res.Allocations, func(a model.SaleAllocation) decimal.Decimal { return a.Proceeds })
	res.Gain = res.Proceeds.Sub(res.Cost)

	s.flushOpenLots(ctx, req.Ticker)

	slog.Info(
		"sale recorded",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.Int64("saleID", res.Sale.ID),
		slog.String("ticker", req.Ticker),
		slog.String("strategy", strategy.String()),
		slog.Int("lots", len(res.Allocations)),
	)

	return res, nil
}

// PreviewSale plans a sale without storing it. A shortfall is reported in the result, not as an error.
func (s *LotService) PreviewSale(ctx context.Context, req model.SaleRequest) (preview model.SalePreview, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.PreviewSale"

	slog.Debug("PreviewSale start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", req.Ticker))
	defer func() {
		slog.Debug("PreviewSale finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", req.Ticker))
	}()

	req.Ticker = normalizeTicker(req.Ticker)
	req.Date = s.dateOrToday(req.Date)

	if req.Ticker == "" || req.Shares.Sign() <= 0 {
		return model.SalePreview{}, fmt.Errorf("%w: ticker and positive shares are required", service.ErrInvalidRequest)
	}

	strategy, err := s.resolveStrategy(ctx, req.ChatID, req.Strategy)
	if err != nil {
		return model.SalePreview{}, err
	}

	view, err := s.openLotsView(ctx, req.Ticker, req.Date)
	if err != nil {
		return model.SalePreview{}, err
	}

	alreadyAllocated := utils.SumDecimals(view.lots, func(l model.Lot) decimal.Decimal { return l.AllocatedShares })
	plan := strategy.Plan(view.lots, alreadyAllocated.Add(req.Shares))

	return model.SalePreview{
		Ticker:      req.Ticker,
		SaleDate:    req.Date,
		Strategy:    strategy.String(),
		Lots:        view.lots,
		Allocations: plan.Allocations,
		Shortfall:   plan.Shortfall,
	}, nil
}

// GetOpenLots returns the open lots of ticker adjusted for the splits up to asOf.
func (s *LotService) GetOpenLots(ctx context.Context, ticker string, asOf time.Time) (summary model.OpenLotsSummary, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.GetOpenLots"

	slog.Debug("GetOpenLots start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))
	defer func() {
		slog.Debug("GetOpenLots finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))
	}()

	ticker = normalizeTicker(ticker)
	asOf = s.dateOrToday(asOf)

	summary, err = s.cache.GetOpenLots(ctx, ticker, asOf)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("can't get open lots from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	view, err := s.openLotsView(ctx, ticker, asOf)
	if err != nil {
		return model.OpenLotsSummary{}, err
	}

	summary = model.OpenLotsSummary{
		Ticker:          ticker,
		AsOf:            asOf,
		Lots:            view.lots,
		RemainingShares: utils.SumDecimals(view.lots, model.Lot.RemainingShares),
		CostBasis: utils.SumDecimals(view.lots, func(l model.Lot) decimal.Decimal {
			return l.PurchasePrice.Mul(l.RemainingShares())
		}),
	}

	if err = s.cache.SetOpenLots(ctx, summary); err != nil {
		slog.Warn("can't set open lots to cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	return summary, nil
}

func (s *LotService) openLotsView(ctx context.Context, ticker string, asOf time.Time) (lotsView, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.openLotsView"

	security, err := s.getSecurity(ctx, ticker)
	if err != nil {
		return lotsView{}, err
	}

	lots, err := s.repo.GetOpenLots(ctx, ticker)
	if err != nil {
		slog.Error("got error from repo.GetOpenLots", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return lotsView{}, err
	}

	splits, err := s.getSplits(ctx, ticker)
	if err != nil {
		return lotsView{}, err
	}

	return adjustLots(lots, splits, asOf, security.Scale), nil
}

func (s *LotService) getSecurity(ctx context.Context, ticker string) (model.Security, error) {
	security, err := s.repo.GetSecurity(ctx, ticker)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Security{}, fmt.Errorf("%w: ticker %s", service.ErrNotFound, ticker)
		}
		slog.Error("got error from repo.GetSecurity", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
		return model.Security{}, err
	}
	if security.Scale <= 0 {
		security.Scale = model.DefaultScale
	}
	return security, nil
}

func (s *LotService) getSplits(ctx context.Context, ticker string) ([]model.StockSplit, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.getSplits"

	splits, err := s.cache.GetSplits(ctx, ticker)
	if err == nil {
		return splits, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("can't get splits from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	splits, err = s.repo.GetSplits(ctx, ticker)
	if err != nil {
		slog.Error("got error from repo.GetSplits", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if err = s.cache.SetSplits(ctx, ticker, splits); err != nil {
		slog.Warn("can't set splits to cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	return splits, nil
}

// DefaultStrategy returns the chat's strategy, or the configured one when the chat has not picked any.
func (s *LotService) DefaultStrategy(ctx context.Context, chatID int64) (allocation.Strategy, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.DefaultStrategy"

	chatSession, err := s.session.GetSession(ctx, chatID)
	if err != nil {
		slog.Warn("can't get session", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	if chatSession.Strategy != "" {
		strategy, err := allocation.ParseStrategy(chatSession.Strategy)
		if err == nil {
			return strategy, nil
		}
		slog.Warn("invalid strategy in session", slog.String("rqID", rqID), slog.String("op", op), slog.String("strategy", chatSession.Strategy))
	}

	strategy, err := allocation.ParseStrategy(s.cfg.Allocation.DefaultStrategy)
	if err != nil {
		return allocation.Strategy{}, fmt.Errorf("config DEFAULT_STRATEGY: %w", err)
	}
	return strategy, nil
}

func (s *LotService) SetDefaultStrategy(ctx context.Context, chatID int64, name string) (allocation.Strategy, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.SetDefaultStrategy"

	strategy, err := allocation.ParseStrategy(name)
	if err != nil {
		return allocation.Strategy{}, fmt.Errorf("%w: %w", service.ErrInvalidRequest, err)
	}

	chatSession, err := s.session.GetSession(ctx, chatID)
	if err != nil {
		slog.Error("got error from session.GetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return allocation.Strategy{}, err
	}

	chatSession.Strategy = strategy.String()
	if err = s.session.SetSession(ctx, chatID, chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return allocation.Strategy{}, err
	}

	return strategy, nil
}

func (s *LotService) resolveStrategy(ctx context.Context, chatID int64, name string) (allocation.Strategy, error) {
	if name == "" {
		return s.DefaultStrategy(ctx, chatID)
	}

	strategy, err := allocation.ParseStrategy(name)
	if err != nil {
		return allocation.Strategy{}, fmt.Errorf("%w: %w", service.ErrInvalidRequest, err)
	}
	return strategy, nil
}

// SyncSplits refreshes the splits of every known security from MOEX.
// Tickers that fail are skipped and reported in the returned error.
func (s *LotService) SyncSplits(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.SyncSplits"

	slog.Debug("SyncSplits start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("SyncSplits finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	securities, err := s.repo.GetSecurities(ctx)
	if err != nil {
		slog.Error("got error from repo.GetSecurities", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	var (
		mu      sync.Mutex
		splits  []model.StockSplit
		tickers []string
		errs    []error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(syncSplitsConcurrency)

	for _, security := range securities {
		g.Go(func() error {
			tickerSplits, err := s.moexApi.GetSplits(gCtx, security.Ticker)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if !errors.Is(err, externalApi.ErrNotFound) {
					errs = append(errs, fmt.Errorf("%s: %w", security.Ticker, err))
				}
				return nil
			}

			splits = append(splits, tickerSplits...)
			tickers = append(tickers, security.Ticker)
			return nil
		})
	}
	_ = g.Wait()

	if err = s.repo.UpsertSplits(ctx, splits); err != nil {
		slog.Error("got error from repo.UpsertSplits", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	if err = s.cache.FlushSplits(ctx, tickers...); err != nil {
		slog.Warn("can't flush splits cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}
	for _, ticker := range tickers {
		s.flushOpenLots(ctx, ticker)
	}

	slog.Info("splits synced", slog.String("rqID", rqID), slog.Int("securities", len(tickers)), slog.Int("splits", len(splits)), slog.Int("failed", len(errs)))

	return errors.Join(errs...)
}

func (s *LotService) syncSecuritySplits(ctx context.Context, ticker string) error {
	splits, err := s.moexApi.GetSplits(ctx, ticker)
	if err != nil {
		return err
	}

	if err = s.repo.UpsertSplits(ctx, splits); err != nil {
		return err
	}

	return s.cache.FlushSplits(ctx, ticker)
}

// RealizedGainsReport builds the xlsx report of all recorded sales.
// The file is uploaded when cloud storage is configured and returned as is otherwise.
func (s *LotService) RealizedGainsReport(ctx context.Context, chatID int64) (report model.Report, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LotService.RealizedGainsReport"

	slog.Debug("RealizedGainsReport start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("chatID", chatID))
	defer func() {
		slog.Debug("RealizedGainsReport finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("chatID", chatID))
	}()

	gains, err := s.repo.GetRealizedGains(ctx)
	if err != nil {
		slog.Error("got error from repo.GetRealizedGains", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Report{}, err
	}
	if len(gains) == 0 {
		return model.Report{}, fmt.Errorf("%w: no sales recorded", service.ErrNotFound)
	}

	fileBytes, ext, err := s.reportGenerator.Generate(ctx, gains)
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Report{}, err
	}

	report.Filename = fmt.Sprintf("realized_gains_%d_%s%s", chatID, s.now().Format("20060102_150405"), ext)

	if s.cloudStorage != nil {
		report.Link, err = s.cloudStorage.UploadFile(ctx, bytes.NewReader(fileBytes), report.Filename)
		if err == nil {
			return report, nil
		}
		slog.Warn("can't upload report, sending file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	report.File = fileBytes
	return report, nil
}

// CleanupReports deletes expired uploaded reports. It does nothing without cloud storage.
func (s *LotService) CleanupReports(ctx context.Context) error {
	if s.cloudStorage == nil {
		return nil
	}

	_, err := s.cloudStorage.DeleteOldFiles(ctx)
	return err
}

func (s *LotService) flushOpenLots(ctx context.Context, ticker string) {
	if err := s.cache.FlushOpenLots(ctx, ticker); err != nil {
		slog.Warn("can't flush open lots cache", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("ticker", ticker), slog.String("err", err.Error()))
	}
}

func (s *LotService) dateOrToday(date time.Time) time.Time {
	if date.IsZero() {
		date = s.now()
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
