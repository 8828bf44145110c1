// Package sagemaker implements llm.Client for models hosted on named,
// pre-provisioned SageMaker real-time endpoints.
//
// The endpoint is expected to speak the messages wire format: a JSON
// request with ordered role/content turns plus a generation-length limit,
// and a JSON response with a choices list. Multi-model endpoints are
// addressed through an optional inference component name.
package sagemaker
