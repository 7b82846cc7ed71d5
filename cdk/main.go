package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type ShuffleStackProps struct {
	awscdk.StackProps
}

func NewShuffleStack(scope constructs.Construct, id string, props *ShuffleStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	// The session lives in Postgres; Lambda instances do not share memory.
	lambdaFn := awslambda.NewFunction(stack, jsii.String("ShuffleApi"), &awslambda.FunctionProps{
		Runtime:    awslambda.Runtime_PROVIDED_AL2023(),
		Handler:    jsii.String("bootstrap"),
		Code:       awslambda.Code_FromAsset(jsii.String("../"), nil),
		MemorySize: jsii.Number(256),
		Timeout:    awscdk.Duration_Seconds(jsii.Number(15)),
		// A single instance keeps session mutations serialized.
		ReservedConcurrentExecutions: jsii.Number(1),
		Environment: &map[string]*string{
			"APP":                     jsii.String("prod"),
			"POSTGRES_DSN":            jsii.String(os.Getenv("POSTGRES_DSN")),
			"POSTGRES_MIGRATIONS_DIR": jsii.String("migrations/postgres"),
			"ORGANIZER_PIN_HASH":      jsii.String(os.Getenv("ORGANIZER_PIN_HASH")),
			"COLLATION_LOCALE":        jsii.String(envOr("COLLATION_LOCALE", "en")),
			"LOG_LEVEL":               jsii.String(envOr("LOG_LEVEL", "info")),
		},
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("ShuffleApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	app := awscdk.NewApp(nil)
	NewShuffleStack(app, "ShuffleStack", &ShuffleStackProps{})
	app.Synth(nil)
}
