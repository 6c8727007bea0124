package deps

import (
	"context"
	"fmt"
	"remindme/internal/config"
	c "remindme/internal/core/domain/common"
	demail "remindme/internal/core/domain/email"
	dl "remindme/internal/core/domain/logging"
	drl "remindme/internal/core/domain/rate_limiter"
	duow "remindme/internal/core/domain/unit_of_work"
	"remindme/internal/core/domain/user"
	"remindme/internal/db"
	uow "remindme/internal/db/unit_of_work"
	dbuser "remindme/internal/db/user"
	"remindme/internal/implementations/email"
	"remindme/internal/implementations/logging"
	passwordhasher "remindme/internal/implementations/password_hasher"
	randomstringgenerator "remindme/internal/implementations/random_string_generator"
	ratelimiter "remindme/internal/implementations/rate_limiter"
	"remindme/internal/implementations/session"
	"remindme/internal/rabbitmq"
	emailqueue "remindme/internal/rabbitmq/publishers/email_queue"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork                   duow.UnitOfWork
	UserRepository               user.UserRepository
	SessionRepository            user.SessionRepository
	PasswordResetTokenRepository user.PasswordResetTokenRepository

	RateLimiter drl.RateLimiter

	// EmailSender delivers messages produced by API services, according to
	// EMAIL_TRANSPORT. SMTPSender is what the mailer process delivers with.
	EmailSender   demail.Sender
	SMTPSender    demail.Sender
	EmailComposer demail.Composer

	UserSessionTokenGenerator   user.SessionTokenGenerator
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	PasswordHasher              user.PasswordHasher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.PasswordResetTokenRepository = dbuser.NewPgxPasswordResetTokenRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.UserSessionTokenGenerator = session.NewUUID()
	deps.PasswordResetTokenGenerator = randomstringgenerator.NewGenerator()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	deps.EmailComposer = email.NewComposer()
	deps.SMTPSender = email.NewSMTP(email.SMTPConfig{
		Host:     deps.Config.EmailServerHost,
		Port:     deps.Config.EmailServerPort,
		User:     deps.Config.EmailServerUser,
		Password: deps.Config.EmailServerPassword,
		From:     c.NewEmail(deps.Config.EmailSender()),
	})
	closeEmailQueue := deps.initEmailSender()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeEmailQueue,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	ctx := context.Background()
	if err := db.ApplyMigrations(deps.Config.PostgresqlURL, deps.Config.MigrationsPath); err != nil {
		deps.Logger.Error(ctx, "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(ctx, "DB migrations applied.", dl.Entry("path", deps.Config.MigrationsPath))

	pool, err := pgxpool.Connect(ctx, deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(context.Background(), "RabbitMQ is disabled.")
		return func() {}
	}
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initEmailSender() func() {
	ctx := context.Background()
	transport := deps.Config.EmailTransport

	switch transport {
	case config.EMAIL_TRANSPORT_SMTP:
		deps.EmailSender = deps.SMTPSender
	case config.EMAIL_TRANSPORT_SES:
		deps.EmailSender = email.NewSES(deps.AwsConfig, c.NewEmail(deps.Config.EmailSender()))
	case config.EMAIL_TRANSPORT_NONE:
		deps.EmailSender = email.NewNone()
	case config.EMAIL_TRANSPORT_AMQP:
		channel, err := deps.Rabbitmq.Channel()
		if err != nil {
			deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("err", err))
			panic(err)
		}
		if err := channel.DeclareQueue(deps.Config.RabbitmqEmailQueue); err != nil {
			deps.Logger.Error(ctx, "Could not create RabbitMQ queue.", dl.Entry("err", err))
			panic(err)
		}
		deps.EmailSender = emailqueue.NewRabbitMQ(deps.Logger, channel, deps.Config.RabbitmqEmailQueue)
		deps.Logger.Info(ctx, "Email transport initialized.", dl.Entry("transport", transport))
		return func() {
			deps.Logger.Info(context.Background(), "Shutting down email queue publisher.")
			channel.Close()
			deps.Logger.Info(context.Background(), "Email queue publisher shut down.")
		}
	}

	deps.Logger.Info(
		ctx,
		"Email transport initialized.",
		dl.Entry("transport", transport),
		dl.Entry("isConfigured", deps.EmailSender.IsConfigured()),
	)
	return func() {}
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
