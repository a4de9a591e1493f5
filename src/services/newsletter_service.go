package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"walter/src/clients/ai"
	"walter/src/config"
	"walter/src/models"
	"walter/src/repositories"
	"walter/src/utils"
)

// RunAck is the fixed acknowledgment a completed newsletter run returns.
const RunAck = "newsletter run complete"

const (
	metricEmailsSent      = "NumberOfEmailsSent"
	metricStocksAnalyzed  = "NumberOfStocksAnalyzed"
	metricSubscribedUsers = "NumberOfSubscribedUsers"
)

// MailerI delivers a rendered newsletter to one recipient.
type MailerI interface {
	SendEmail(ctx context.Context, sender, recipient, subject, htmlBody string, assets []models.TemplateAsset) error
}

// MetricsI publishes count metrics. Emission failures never fail a run.
type MetricsI interface {
	EmitCount(ctx context.Context, domain, metricName string, value float64) error
}

type NewsletterServiceI interface {
	Run(ctx context.Context) (string, error)
}

// NewsletterService drives one newsletter run: collect prices for every
// tracked stock over the trailing window, then generate, render, archive and
// deliver a newsletter per subscribed user, and emit run metrics at the end.
type NewsletterService struct {
	stockRepository    repositories.StockRepository
	userRepository     repositories.UserRepository
	holdingRepository  repositories.HoldingRepository
	templateRepository repositories.TemplateRepository

	stockService    StockServiceI
	templateService TemplateServiceI
	generator       ai.GeneratorClientI
	mailer          MailerI
	metrics         MetricsI

	cfg *config.Config
	now func() time.Time
}

func NewNewsletterService(
	stockRepository repositories.StockRepository,
	userRepository repositories.UserRepository,
	holdingRepository repositories.HoldingRepository,
	templateRepository repositories.TemplateRepository,
	stockService StockServiceI,
	templateService TemplateServiceI,
	generator ai.GeneratorClientI,
	mailer MailerI,
	metrics MetricsI,
	cfg *config.Config,
) *NewsletterService {
	return &NewsletterService{
		stockRepository:    stockRepository,
		userRepository:     userRepository,
		holdingRepository:  holdingRepository,
		templateRepository: templateRepository,
		stockService:       stockService,
		templateService:    templateService,
		generator:          generator,
		mailer:             mailer,
		metrics:            metrics,
		cfg:                cfg,
		now:                time.Now,
	}
}

// Run executes one full pipeline run across all subscribed users.
//
// The price window is computed once, so every user sees the same snapshot.
// With the ABORT policy (the default) the first user failure stops the run;
// CONTINUE isolates each user and reports the collected failures at the end.
// More than one worker implies CONTINUE semantics, since parallel users must
// not take each other down.
func (s *NewsletterService) Run(ctx context.Context) (string, error) {
	logger := utils.LoggerFromContext(ctx)
	logger.Info("Starting newsletter run")

	stocks, err := s.stockRepository.ListStocks(ctx)
	if err != nil {
		return "", fmt.Errorf("list tracked stocks: %w", err)
	}

	start, end, err := utils.TrailingWindow(s.now(), s.cfg.Newsletter.LookbackDays)
	if err != nil {
		return "", err
	}

	// An empty tracked set is not an error: the run proceeds and the
	// newsletters simply carry no numbers.
	prices := map[string]models.PriceSeries{}
	if len(stocks) > 0 {
		symbols := make([]string, 0, len(stocks))
		for _, stock := range stocks {
			symbols = append(symbols, stock.Symbol)
		}
		prices, err = s.stockService.CollectPrices(ctx, symbols, start, end)
		if err != nil {
			return "", err
		}
	}

	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("list subscribed users: %w", err)
	}
	logger.Infof("Generating newsletters for %d users over window [%s, %s)",
		len(users), start.Format(utils.ShortDashDateLayout), end.Format(utils.ShortDashDateLayout))

	var emailsSent int64
	var runErr error
	if s.cfg.Newsletter.Workers > 1 {
		emailsSent, runErr = s.processUsersParallel(ctx, users, prices)
	} else {
		emailsSent, runErr = s.processUsersSequential(ctx, users, prices)
	}

	// Metrics are emitted whether the loop completed or aborted, and a
	// metrics failure must not fail newsletters that were already delivered.
	s.emitRunMetrics(ctx, emailsSent, int64(len(stocks)), int64(len(users)))

	if runErr != nil {
		return "", runErr
	}
	logger.Infof("Newsletter run complete: %d emails sent", emailsSent)
	return RunAck, nil
}

func (s *NewsletterService) processUsersSequential(ctx context.Context, users []models.User, prices map[string]models.PriceSeries) (int64, error) {
	logger := utils.LoggerFromContext(ctx)

	var sent int64
	var userErrs []error
	for i := range users {
		user := &users[i]
		if err := s.processUser(ctx, user, prices); err != nil {
			if s.cfg.Newsletter.OnUserFailure == config.AbortRun {
				return sent, fmt.Errorf("newsletter for %s: %w", user.Email, err)
			}
			logger.Errorf("Newsletter for %s failed: %v", user.Email, err)
			userErrs = append(userErrs, fmt.Errorf("newsletter for %s: %w", user.Email, err))
			continue
		}
		sent++
	}
	return sent, errors.Join(userErrs...)
}

func (s *NewsletterService) processUsersParallel(ctx context.Context, users []models.User, prices map[string]models.PriceSeries) (int64, error) {
	logger := utils.LoggerFromContext(ctx)

	sem := make(chan struct{}, s.cfg.Newsletter.Workers)
	var wg sync.WaitGroup
	var sent atomic.Int64
	var mu sync.Mutex
	var userErrs []error

	for i := range users {
		user := &users[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := s.processUser(ctx, user, prices); err != nil {
				logger.Errorf("Newsletter for %s failed: %v", user.Email, err)
				mu.Lock()
				userErrs = append(userErrs, fmt.Errorf("newsletter for %s: %w", user.Email, err))
				mu.Unlock()
				return
			}
			sent.Add(1)
		}()
	}
	wg.Wait()
	return sent.Load(), errors.Join(userErrs...)
}

// processUser runs the per-user chain: holdings → portfolio → generation →
// render (which archives) → delivery. Each stage feeds the next; the first
// failure aborts the chain for this user.
func (s *NewsletterService) processUser(ctx context.Context, user *models.User, prices map[string]models.PriceSeries) error {
	templateName := s.cfg.Newsletter.TemplateName

	holdings, err := s.holdingRepository.GetStocksForUser(ctx, user.Email)
	if err != nil {
		return err
	}
	held := make(map[string]models.UserStock, len(holdings))
	for _, holding := range holdings {
		held[holding.Symbol] = holding
	}
	portfolio := models.NewPortfolio(held, prices)

	spec, err := s.templateRepository.GetTemplateSpec(ctx, templateName)
	if err != nil {
		return err
	}

	preamble, err := portfolioPrompt(user, portfolio)
	if err != nil {
		return err
	}

	responses := make([]models.GeneratedResponse, 0, len(spec.Parameters))
	for _, parameter := range spec.Parameters {
		text, err := s.generator.Generate(ctx, preamble+"\n\n"+parameter.Prompt)
		if err != nil {
			return err
		}
		responses = append(responses, models.GeneratedResponse{Key: parameter.Key, Text: text})
	}

	parameters := s.templateService.BuildParameters(responses)
	body, err := s.templateService.Render(ctx, user, templateName, parameters)
	if err != nil {
		return err
	}

	assets, err := s.templateRepository.GetTemplateAssets(ctx, templateName)
	if err != nil {
		return err
	}

	return s.mailer.SendEmail(ctx, s.cfg.AWS.SenderAddress, user.Email, s.cfg.Newsletter.Subject, body, assets)
}

// portfolioPrompt summarizes the reader's positions for the generative model.
func portfolioPrompt(user *models.User, portfolio *models.Portfolio) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are writing this week's financial newsletter for %s.\n", user.Username)

	symbols := portfolio.GetStocks()
	if len(symbols) == 0 {
		b.WriteString("The reader holds no tracked stocks this week.")
		return b.String(), nil
	}

	b.WriteString("The reader's portfolio:\n")
	for _, symbol := range symbols {
		price, err := portfolio.GetLatestPrice(symbol)
		if err != nil {
			return "", err
		}
		shares, err := portfolio.GetNumberOfShares(symbol)
		if err != nil {
			return "", err
		}
		equity, err := portfolio.GetEquity(symbol)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "- %s: %.2f shares at $%.2f, equity $%.2f\n", symbol, shares, price, equity)
	}
	total, err := portfolio.GetTotalEquity()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Total equity: $%.2f", total)
	return b.String(), nil
}

func (s *NewsletterService) emitRunMetrics(ctx context.Context, emailsSent, stocksAnalyzed, subscribedUsers int64) {
	logger := utils.LoggerFromContext(ctx)
	domain := s.cfg.AWS.Domain

	counts := map[string]int64{
		metricEmailsSent:      emailsSent,
		metricStocksAnalyzed:  stocksAnalyzed,
		metricSubscribedUsers: subscribedUsers,
	}
	for name, value := range counts {
		if err := s.metrics.EmitCount(ctx, domain, name, float64(value)); err != nil {
			logger.Warnf("Failed to emit metric %s=%d: %v", name, value, err)
		}
	}
}
