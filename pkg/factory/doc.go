// Package factory provides provider registration and client construction.
//
// Providers self-register through the imports in this package, so importing
// factory is enough to make every built-in provider available by name.
//
// Example usage:
//
//	fact := factory.New()
//	client, err := fact.CreateClient(llm.ClientConfig{
//	    Provider: "sagemaker",
//	    Endpoint: "my-endpoint",
//	    Region:   "us-east-1",
//	})
package factory
