package vision

// SafetyPrompt is sent ahead of the frames on every summary request. It is
// a behavioral constraint on the model's output, not a guarantee: the model
// is asked, not forced, to comply.
const SafetyPrompt = `You are a safety-aware video summarizer.
Do NOT output any personal details, license plates, exact locations, names, timestamps, or any numbers seen on screen.
Do NOT guess demographics or identities.
Describe only abstract events in sequence. If unsure, say "uncertain".

Task: Summarize what happens in this traffic incident video in 5-8 bullet points.
`

// framePrompt drives the optional per-frame description pass.
const framePrompt = "What is happening in this frame? Describe the road scene and the sequence of events abstractly. Do not read out plates, signs, numbers, or identify anyone."

// describerSystemPrompt configures the per-frame description agent.
const describerSystemPrompt = "You are a visual analysis assistant specialized in concise dashcam frame descriptions. Describe only abstract road events and context, never personal or identifying detail."
