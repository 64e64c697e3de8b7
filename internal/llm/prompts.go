package llm

// Extraction prompt templates. Each instructs the model to emit a small
// fixed key:value block that the parsers in parse.go understand; free-form
// reasoning is tolerated but only the tagged lines are read.

const birthSystemPrompt = `You extract dates of birth from text excerpts about a named person.
You only report what the excerpt itself states about that exact person.
Never infer a year from context, age, or other people mentioned in the text.`

const birthUserTemplate = `Person: {{PERSON_NAME}}

Text excerpt:
"""
{{CHUNK_TEXT}}
"""

Does this excerpt state the person's date or year of birth?
Answer in exactly this format:
reasoning: <one short sentence>
contains_birthdate: true|false
birth_year: <YYYY or null>`

const deathSystemPrompt = `You determine from a text excerpt whether a named person is deceased or alive.
You only report what the excerpt itself states about that exact person.
"deceased" requires an explicit statement of death; current-role or
present-tense descriptions indicate "alive"; otherwise answer "unknown".`

const deathUserTemplate = `Person: {{PERSON_NAME}}

Text excerpt:
"""
{{CHUNK_TEXT}}
"""

Is this person deceased or alive according to the excerpt?
Answer in exactly this format:
reasoning: <one short sentence>
status: deceased|alive|unknown
death_year: <YYYY or null>`

const nationalitySystemPrompt = `You extract nationalities or citizenships from text excerpts about a named person.
You only report what the excerpt itself states about that exact person.
Report countries as ISO-3166 alpha-3 codes (e.g. FRA, ITA, THA).`

const nationalityUserTemplate = `Person: {{PERSON_NAME}}

Text excerpt:
"""
{{CHUNK_TEXT}}
"""

Which nationalities or citizenships does the excerpt state for this person?
Answer in exactly this format:
reasoning: <one short sentence>
nationalities_found: true|false
nationalities: ["XXX", "YYY"] or []`

const educationStage1System = `You extract education history from text excerpts about a named person.
You only report what the excerpt itself states about that exact person.
A mention is one verbatim or lightly trimmed phrase about a school,
university, degree, or field of study.`

const educationStage1Template = `Person: {{PERSON_NAME}}

Text excerpt:
"""
{{CHUNK_TEXT}}
"""

Does this excerpt mention the person's education?
Answer in exactly this format:
reasoning: <one short sentence>
education_found: true|false
education_mentions: ["mention one", "mention two"] or []`

const educationStage2System = `You consolidate raw education mentions about one person into structured
events. Merge mentions describing the same institution and degree; never
invent institutions, degrees, or years that no mention states.`

const educationStage2Template = `Person: {{PERSON_NAME}}

Education mentions collected from multiple sources:
{{EDUCATION_MENTIONS}}

Consolidate these into distinct education events. Respond with only a
JSON object in this form:
{"education_events": [{"institution": "...", "degree": "...", "field": "...", "start_year": 1990, "end_year": 1994}]}
Use null for unknown years and "" for unknown degree or field.`
