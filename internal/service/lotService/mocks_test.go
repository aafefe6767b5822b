package lotService

import (
	"context"
	"io"
	"time"

	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/moexModel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error {
	return tFunc(ctx)
}

func (m *repoMock) UpsertSecurity(ctx context.Context, security model.Security) error {
	return m.Called(ctx, security).Error(0)
}

func (m *repoMock) GetSecurity(ctx context.Context, ticker string) (model.Security, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).(model.Security), args.Error(1)
}

func (m *repoMock) GetSecurities(ctx context.Context) ([]model.Security, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Security), args.Error(1)
}

func (m *repoMock) InsertLot(ctx context.Context, lot model.Lot) (int64, error) {
	args := m.Called(ctx, lot)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) GetOpenLots(ctx context.Context, ticker string) ([]model.Lot, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).([]model.Lot), args.Error(1)
}

func (m *repoMock) GetOpenLotsForUpdate(ctx context.Context, ticker string) ([]model.Lot, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).([]model.Lot), args.Error(1)
}

func (m *repoMock) UpdateLotAllocatedShares(ctx context.Context, lotID int64, allocatedShares decimal.Decimal) error {
	return m.Called(ctx, lotID, allocatedShares).Error(0)
}

func (m *repoMock) GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).([]model.StockSplit), args.Error(1)
}

func (m *repoMock) UpsertSplits(ctx context.Context, splits []model.StockSplit) error {
	return m.Called(ctx, splits).Error(0)
}

func (m *repoMock) InsertSale(ctx context.Context, sale model.Sale) (int64, error) {
	args := m.Called(ctx, sale)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) InsertSaleAllocations(ctx context.Context, allocations []model.SaleAllocation) error {
	return m.Called(ctx, allocations).Error(0)
}

func (m *repoMock) GetRealizedGains(ctx context.Context) ([]model.RealizedGain, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.RealizedGain), args.Error(1)
}

type cacheMock struct {
	mock.Mock
}

func (m *cacheMock) GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).([]model.StockSplit), args.Error(1)
}

func (m *cacheMock) SetSplits(ctx context.Context, ticker string, splits []model.StockSplit) error {
	return m.Called(ctx, ticker, splits).Error(0)
}

func (m *cacheMock) FlushSplits(ctx context.Context, tickers ...string) error {
	return m.Called(ctx, tickers).Error(0)
}

func (m *cacheMock) GetOpenLots(ctx context.Context, ticker string, asOf time.Time) (model.OpenLotsSummary, error) {
	args := m.Called(ctx, ticker, asOf)
	return args.Get(0).(model.OpenLotsSummary), args.Error(1)
}

func (m *cacheMock) SetOpenLots(ctx context.Context, summary model.OpenLotsSummary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *cacheMock) FlushOpenLots(ctx context.Context, ticker string) error {
	return m.Called(ctx, ticker).Error(0)
}

type lockerMock struct {
	mock.Mock
}

func (m *lockerMock) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	unlock, _ := args.Get(0).(func())
	return unlock, args.Error(1)
}

type sessionMock struct {
	mock.Mock
}

func (m *sessionMock) GetSession(ctx context.Context, chatID int64) (model.Session, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *sessionMock) SetSession(ctx context.Context, chatID int64, session model.Session) error {
	return m.Called(ctx, chatID, session).Error(0)
}

type moexMock struct {
	mock.Mock
}

func (m *moexMock) GetSecurityInfo(ctx context.Context, ticker string) (moexModel.SecurityInfo, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).(moexModel.SecurityInfo), args.Error(1)
}

func (m *moexMock) GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).([]model.StockSplit), args.Error(1)
}

type generatorMock struct {
	mock.Mock
}

func (m *generatorMock) Generate(ctx context.Context, gains []model.RealizedGain) ([]byte, string, error) {
	args := m.Called(ctx, gains)
	fileBytes, _ := args.Get(0).([]byte)
	return fileBytes, args.String(1), args.Error(2)
}

type storageMock struct {
	mock.Mock
}

func (m *storageMock) UploadFile(ctx context.Context, reader io.Reader, filename string) (string, error) {
	args := m.Called(ctx, reader, filename)
	return args.String(0), args.Error(1)
}

func (m *storageMock) DeleteOldFiles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
