package handler

// Export for testing
type ChartResponse = chartResponse
type HealthResponse = healthResponse
type CredentialResponse = credentialResponse
type CreatedKeyResponse = createdKeyResponse
type CredentialListResponse = credentialListResponse
type UsageResponse = usageResponse
type WindowUsageResponse = windowUsageResponse
type AuthStatusResponse = authStatusResponse
type AuthResponseDTO = authResponse
type UserResponse = userResponse

var NewChartHandlerHelper = NewChartHandler
var NewCredentialHandlerHelper = NewCredentialHandler
var NewAuthHandlerHelper = NewAuthHandler

var WriteServiceError = writeServiceError
