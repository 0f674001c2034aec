package main

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/services"
	"github.com/matttrann/NDIS-Web-Application-sub000/config"
	"github.com/matttrann/NDIS-Web-Application-sub000/infrastructure/adapters"
	"github.com/matttrann/NDIS-Web-Application-sub000/infrastructure/gin_interface/controllers"
	"github.com/matttrann/NDIS-Web-Application-sub000/middleware"
	mockgenerator "github.com/matttrann/NDIS-Web-Application-sub000/mock"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"os"
	"time"
)

func main() {
	_ = godotenv.Load()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	mediaStore := adapters.NewS3MediaStore(s3Client, s3Config)
	requestStore := adapters.NewDynamoRequestStore(zeroLogger, dynamoClient, dynamoConfig)

	var scriptGenerator outbound.ScriptGeneratorPort
	var speechSynthesizer outbound.SpeechSynthesizerPort
	var transcriber outbound.TranscriberPort
	var imageGenerator outbound.ImageGeneratorPort
	var lipSyncGenerator outbound.LipSyncGeneratorPort
	var renderer outbound.RendererPort
	var questionnaireFetcher outbound.QuestionnaireFetcherPort

	if os.Getenv("MOCK_PROVIDERS") == "true" {
		suite := mockgenerator.NewSuite(zeroLogger, 2*time.Second)
		scriptGenerator = suite.ScriptGenerator()
		speechSynthesizer = suite.SpeechSynthesizer()
		transcriber = suite.Transcriber()
		imageGenerator = suite.ImageGenerator()
		lipSyncGenerator = suite.LipSyncGenerator()
		renderer = suite.Renderer()
		questionnaireFetcher = suite.QuestionnaireFetcher()
	} else {
		gptConfig, err := config.GetGptConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get gpt config")
		}

		elevenLabsConfig, err := config.GetElevenLabsConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get eleven labs config")
		}

		dalleConfig, err := config.GetDaLLeConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get dalle config")
		}

		transcriberConfig, err := config.GetTranscriberConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get transcriber config")
		}

		lipSyncConfig, err := config.GetLipSyncConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get lip-sync config")
		}

		rendererConfig, err := config.GetRendererConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get renderer config")
		}

		questionnaireConfig, err := config.GetQuestionnaireConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get questionnaire config")
		}

		authConfig, err := config.NewAuthorizerConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get authorizer config")
		}

		contentFetcher := adapters.NewContentFetcher(zeroLogger)
		authorizer := adapters.NewCognitoAuthorizer(zeroLogger, authConfig)

		scriptGenerator = adapters.NewScriptGenerator(gptConfig, zeroLogger)
		speechSynthesizer = adapters.NewSpeechSynthesizer(contentFetcher, elevenLabsConfig)
		transcriber = adapters.NewTranscriber(contentFetcher, transcriberConfig, zeroLogger)
		imageGenerator = adapters.NewImageGenerator(contentFetcher, dalleConfig, zeroLogger)
		lipSyncGenerator = adapters.NewLipSyncGenerator(contentFetcher, lipSyncConfig, zeroLogger)
		renderer = adapters.NewRendererClient(contentFetcher, rendererConfig, zeroLogger)
		questionnaireFetcher = adapters.NewQuestionnaireFetcher(contentFetcher, questionnaireConfig, authorizer, zeroLogger)
	}

	frameRetrier := services.NewFrameRetrier(imageGenerator, pipelineConfig.FrameMaxAttempts,
		pipelineConfig.InterFrameDelay, pipelineConfig.FrameRetryDelay, zeroLogger)

	stages := services.NewPipelineStages(zeroLogger, requestStore, mediaStore, questionnaireFetcher,
		scriptGenerator, speechSynthesizer, transcriber, lipSyncGenerator, renderer, frameRetrier,
		s3Config.SignedURLTTL)

	orchestrator := services.NewPipelineOrchestrator(zeroLogger, requestStore, stages, workerPool)

	requestsController := controllers.NewVideoRequestsController(zeroLogger, requestStore, mediaStore,
		orchestrator, s3Config.SignedURLTTL)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.RequestLogger())

	requestsController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
