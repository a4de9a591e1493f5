package clients

import (
	"github.com/go-chi/jwtauth"

	"walter/src/clients/ai"
	"walter/src/clients/polygon"
	"walter/src/config"
	"walter/src/repositories"
	"walter/src/services"
	aws_handler "walter/src/utils/aws"
)

// Clients is the dependency context of the backend: every external-service
// client, repository and service, constructed once at process start and
// passed into servers explicitly. Tests substitute fakes through the
// interfaces it exposes.
type Clients struct {
	Config  *config.Config
	Secrets *aws_handler.Secrets

	TokenAuth *jwtauth.JWTAuth

	Users       repositories.UserRepository
	Stocks      repositories.StockRepository
	Holdings    repositories.HoldingRepository
	Templates   repositories.TemplateRepository
	Newsletters repositories.NewsletterRepository

	Polygon   polygon.PolygonServiceClientI
	Generator ai.GeneratorClientI
	Mailer    services.MailerI
	Metrics   services.MetricsI

	StockService      services.StockServiceI
	TemplateService   services.TemplateServiceI
	NewsletterService services.NewsletterServiceI
}

// NewClients wires the whole dependency graph. Secrets are fetched eagerly
// here, once, and passed into constructors as plain values.
func NewClients(cfg *config.Config) (*Clients, error) {
	handler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return nil, err
	}

	secrets, err := handler.SecretManager.LoadSecrets()
	if err != nil {
		return nil, err
	}

	polygonClient, err := polygon.NewClient(cfg, secrets.PolygonAPIKey)
	if err != nil {
		return nil, err
	}

	generator, err := ai.NewGenerator(cfg, handler, secrets)
	if err != nil {
		return nil, err
	}

	domain := cfg.AWS.Domain
	users := repositories.NewUserRepository(handler.DynamoDB, domain)
	stocks := repositories.NewStockRepository(handler.DynamoDB, domain)
	holdings := repositories.NewHoldingRepository(handler.DynamoDB, domain)
	templates := repositories.NewTemplateRepository(handler.S3, cfg.AWS.TemplatesBucket)
	newsletters := repositories.NewNewsletterRepository(handler.S3, cfg.AWS.NewslettersBucket)

	stockService := services.NewStockService(polygonClient)
	templateService := services.NewTemplateService(templates, newsletters)
	newsletterService := services.NewNewsletterService(
		stocks, users, holdings, templates,
		stockService, templateService, generator,
		handler.SES, handler.CloudWatch, cfg,
	)

	return &Clients{
		Config:            cfg,
		Secrets:           secrets,
		TokenAuth:         jwtauth.New("HS256", []byte(secrets.JWTSecretKey), nil),
		Users:             users,
		Stocks:            stocks,
		Holdings:          holdings,
		Templates:         templates,
		Newsletters:       newsletters,
		Polygon:           polygonClient,
		Generator:         generator,
		Mailer:            handler.SES,
		Metrics:           handler.CloudWatch,
		StockService:      stockService,
		TemplateService:   templateService,
		NewsletterService: newsletterService,
	}, nil
}
