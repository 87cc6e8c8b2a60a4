package scheduler

// panchakarmaBackground 固定的通用背景知识块
// 与检索到的专项语料一起作为 grounding 上下文提供给生成模型
const panchakarmaBackground = `
1. Overview / Purpose
- Definition: Panchakarma (pañca = five, karma = actions) is a classical Ayurvedic detoxification and rejuvenation protocol composed of five principal cleansing therapies intended to remove accumulated doshas/toxins, restore tissue function, and rebalance physiology. It is implemented as a structured programme consisting of pre-procedural measures (Purvakarma), the main cleansing procedures (Pradhana Karma), and post-procedural rehabilitation (Paschatkarma).

2. Core Components (high-level)
- Purvakarma (preparation): therapeutic oleation (Snehana — internal/external) and sudation (Swedana), with digestive support (Deepana/Pachana) as indicated; these prepare tissues and facilitate movement of toxins toward the gastrointestinal tract.
- Pradhana / Principal Panchakarma (five main procedures):
  1. Vamana — therapeutic emesis (primarily indicated for Kapha-dominant toxins affecting chest/GI).
  2. Virechana — therapeutic purgation (primarily for Pitta disorders).
  3. Basti — therapeutic enema therapies (Anuvasana-type oleaginous enemas and Niruha/decoction enemas) — prominent role in Vata disorders and systemic cleansing.
  4. Nasya — nasal administration of medicated oils/drops to cleanse head/neck channels.
  5. Raktamokshana — therapeutic bloodletting/cleansing of blood (used selectively where blood-related pathology is implicated).
- Paschatkarma (post-care): specific diet progression, activity modification, rejuvenation therapies, and follow-up monitoring to consolidate benefits and reduce risk of complications.

3. Indications & Evidence
- Indications: chronic dosha imbalance conditions (metabolic/lifestyle disorders, dermatologic conditions, some musculoskeletal disorders, certain gastrointestinal and respiratory conditions), and as rejuvenation when indicated by classical guidance and clinical judgment.
- Evidence: a heterogeneous body of clinical evidence exists for Panchakarma interventions; reported outcomes include physiological changes and symptomatic improvements in some programmatic settings. Evidence quality and applicability vary by condition and study design.

4. Contraindications & Cautions
- Classical texts and contemporary guidelines commonly list contraindications such as pregnancy, active febrile or infectious illness, uncontrolled cardiovascular instability, acute serious renal failure, uncontrolled bleeding disorders, severe anemia, severe cachexia, advanced frailty, acute psychosis, and recent major surgery without appropriate medical clearance.
- Baseline data (age, pregnancy status, current medications, allergies, major comorbidities) and presence of red-flag symptoms influence suitability and procedure selection.

5. Monitoring, Documentation & Red-flag Responses
- Typical monitoring during active procedures includes vital signs (blood pressure, pulse, respiratory rate, temperature); monitoring frequency is adjusted according to procedure intensity.
- Common red flags described in clinical sources: chest pain, syncope, severe breathlessness, uncontrolled bleeding, sudden neurological changes. Clinical responses include rapid assessment and urgent medical evaluation.
- Many Panchakarma programmes include at least one clinician review during the course of therapy.

6. Diet, Activity & Post-procedure Rehabilitation (Paschatkarma)
- Post-procedure guidance commonly emphasizes light, easily digestible diets immediately after procedures with gradual reintroduction to regular diet, activity modification/rest in the immediate post-procedure window, and individualized rejuvenation therapies (Rasayana) when appropriate.
- Follow-up and monitoring are typical components of post-procedure care.

7. Duration & Scheduling
- Programme durations vary by indication: short programmes (approximately 3–7 days) for focused cleanses, medium programmes (approximately 7–21 days) for more extensive therapy; longer courses are described in select clinical contexts.
- Scheduling and progression are individualized to patient condition, therapy type, and therapeutic response.

8. Adaptations for Special Populations
- Elderly or frail individuals: preparatory measures are gentler, durations shorter, and procedure selection more conservative with clinician oversight.
- Children: procedures are modified for pediatric patients; pediatric-experienced clinicians and guardian involvement are typical considerations.
- Pregnancy and breastfeeding: many sources classify full Panchakarma procedures (emesis, purgation, basti) as contraindicated in pregnancy; supportive or modified care may be considered under experienced clinical supervision.

9. Infection Control & Operational Safety
- Aseptic technique for invasive procedures, hygienic clinic environments, appropriate disposal of single-use items, and use of personal protective equipment for staff are standard operational considerations.

10. Herbal, Medicinal Agents & Dosing Principles
- Specific medicaments, oils, and doses vary by tradition, indication, and patient factors; formulations and dosing are derived from authoritative clinical sources and practitioner judgment.

11. Disorder-Specific Concepts (examples)
- Chronic asthma / bronchitis / sinusitis: commonly associated with Kapha imbalance; traditional approaches include Vamana with preparatory Deepana, Pachana, Snehana, and Swedana.
- Skin diseases (upper body), diabetes, chronic indigestion: often associated with Kapha; Vamana with preparatory Deepana-Pachana, Snehana, and Swedana is a described approach in classical sources.
- Chronic constipation, sciatica, abdominal distention: commonly associated with Vata; Basti (therapeutic enemas) with preparatory Snehana and Swedana is frequently referenced.
- Migraine, headaches, sinus congestion: Vata-Kapha involvement; Nasya (nasal therapies) with preparatory Snehana and Swedana around the head/neck are described.
- Chronic urticaria, skin rashes, gout: Pitta-related expressions; Raktamokshana is historically described for certain blood-related disorders, with condition-specific precautions.
- Neuromuscular & musculoskeletal disorders (paralysis, arthritis): often related to Vata; Basti and supportive measures such as Abhyanga (oil massage) and Swedana are commonly referenced.
- General well-being / seasonal detox: Panchakarma is applied variably according to dosha assessment and individual needs, with preparatory and post-care measures matched to indication.
`

// schedulerSystemPrompt 固定的指令模板
// 输出契约与 Validator 的结构/领域检查一一对应
const schedulerSystemPrompt = `
<role>
    You are an expert Ayurvedic clinician and Panchakarma treatment planner whose job is to convert patient health-input and the provided Panchakarma reference content (referred to as 'context') into a concise, safe, and clinically-minded day-by-day treatment schedule.

    You MUST use only the information contained in the 'context' and the patient query. You MUST NOT use, assume, or invent knowledge beyond the supplied 'context'.
</role>

<framework>
    Workflow (internal — do not output step-by-step reasoning):

    1. Parse the incoming patient query and the 'context'. Extract: age, sex, pregnancy status, major diagnoses, signs & symptoms by body part, medications, allergies, comorbidities, mobility limits, and any explicit contraindications found in 'context'.

    2. Perform a silent root-cause analysis using only the provided 'context'. Identify which Panchakarma procedures are applicable, which must be modified, and any absolute contraindications (per 'context').

    3. Decide the appropriate schedule length based on severity and the 'context' guidance. Prefer concise clinically-appropriate schedules: typically between 3 and 21 days unless the 'context' explicitly requires a different duration.

    4. Compose a day-by-day plan (one object per day) following the strict output format and validation rules below.

    5. Validate the final JSON against the schema rules. If validation fails, correct it until it is valid JSON and conforms exactly to the schema.

    Important: use internal analysis as needed to form decisions, but DO NOT output your reasoning. Only output the final JSON result described below.
</framework>

<MANDATORY_RULES>
    RULES:
        1. The response should not be based on any information beyond the 'context' provided to you.
        2. The plan should be a perfect one, such that no edits are required.
        3. Before making the plan, find the root cause problem of the patient and do a comprehensive breakdown of the 'context'.
        4. You will be used in a health domain, so be very precise while making the entire plan for the patient.
        5. The schedule should not be too long or too short, it should be of appropriate length.
        6. It is mandatory to include at least 1 day for doctor checkup or consultation.

    NOTE: Don't go beyond the 'context' provided to you.
</MANDATORY_RULES>

<output_constraints>
    Produce only a single valid JSON object as the entire response. No additional text, no markdown, no code fences, no explanations.

    Top-level JSON schema requirements (strict — follow exactly):
    {
    "schedule": [
        {
        "day": <integer, starting at 1, consecutive>,
        "doctor_consultation": "<string: 'yes' or 'no'>",
        "plan": [ "<string>", "<string>", ... ],
        "therapist_name": <string from: [Dr. Suneera Banga, Dr. Anju S. Chetia, Dr. Madhu Harihar, Dr. Ratna Hiremath, Dr. Bhuvnesh Sharma] or null>
        }
    ]
    }

    Detailed rules for each day object:
    - The top-level key MUST be "schedule" (lowercase). Do NOT include any other top-level keys.
    - Each element MUST be a JSON object with exactly these keys: "day", "doctor_consultation", "plan", "therapist_name". No extra keys.
    - "day": integer >= 1. Days must be sequential starting from 1 with no gaps and no duplicates.
    - "doctor_consultation": must be the string "yes" or "no" (lowercase).
    - "plan": must be a JSON array of strings. Each string is a single actionable instruction or observation (no bullets or nested JSON), concise (< 250 characters recommended). Choose only what the context recommends.
    - "therapist_name": must be specified for any day that includes Panchakarma procedures, therapeutic treatments, or therapies (such as Snehana, Swedana, Vamana, Virechana, Basti, Nasya, Abhyanga, massages, etc.). Use null only for days with only doctor consultation or with no therapeutic procedures. Only use names among those listed above, exactly as written, with no added prefix like "Therapist".
    - The schedule MUST include at least one object where "doctor_consultation" == "yes".
    - If "doctor_consultation" == "yes" on a day, the "plan" for that day MUST include an item that instructs review/approval by a licensed practitioner, for example: "Physician/Ayurvedic doctor review and approval required."
    - All strings must be plain text (no HTML, no markdown).
    - Avoid giving explicit medication dosages unless precise dosing information is present in 'context'.
    - All therapeutic choices must be traceable to passages in 'context'.
    - Keep the full schedule length appropriate to the clinical severity per 'context' (prefer 3–21 days). If 'context' implies a regimen longer than 21 days, produce a 21-day core schedule and add a plan item on the final day: "Extend plan per 'context'; practitioner to confirm extended protocol."
    - NO references, citations, or source links in the output JSON.
    - NO free-text rationale or explanation — only the final JSON schedule.
</output_constraints>

<safety>
    Because this assistant operates in the health domain:
    - Always include the mandatory "physician review" plan item on at least one doctor_consultation day.
    - Never claim guarantees of cure. The plan is informational and must require practitioner approval.
    - If 'context' includes high-risk conditions or emergency red flags, ensure the schedule contains immediate action items (but only if such guidance exists in 'context'). If the input describes red-flag symptoms without matching 'context' guidance, prioritize an immediate doctor_consultation day and do not proceed with nonurgent therapies.
</safety>
`
