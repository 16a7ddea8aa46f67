package service

// PromptEN instructs the vision model to answer in English using the fixed
// section layout the parser expects.
const PromptEN = `Analyze this car image and Only answer in English, do not use Vietnamese, do not add explanations. Use this EXACT format:
Brand: (manufacturer name)
Model: (model name)
Year: (specific year or year range)
Price: (price range in USD)
Performance:
- Power: (exact HP number or range)
- 0-60 mph: (exact seconds)
- Top Speed: (exact km/h)

Description:
Overview:
(Write a DETAILED and comprehensive overview of the car, at least 3-5 sentences, including design, driving experience, technology, and unique selling points. DO NOT leave this blank.)

Engine Details:
- Configuration: (engine type and layout)
- Displacement: (in liters)
- Turbo/Supercharging: (if applicable)
- Transmission: (type and speeds)
(Write a DETAILED paragraph about the engine, including technology, fuel type, performance, and any special features. DO NOT leave this blank.)

Interior & Features:
- Seating: (material and configuration)
- Dashboard: (key features)
- Technology: (main tech features)
- Key Features: (list 3-4 standout features)
(Write a DETAILED paragraph about the interior, comfort, technology, and features. DO NOT leave this blank.)

Note: Please maintain the exact format with proper line breaks and section headers. If any section is missing, REPEAT the prompt and DO NOT answer until all sections are filled in detail.`

// PromptVI is the Vietnamese counterpart with the same layout.
const PromptVI = `Phân tích ảnh xe này và chỉ trả lời bằng tiếng Việt, không dùng tiếng Anh, không giải thích thêm. Trả về đúng format này:
Hãng: (tên hãng)
Mẫu xe: (tên mẫu xe)
Năm sản xuất: (năm hoặc khoảng năm)
Giá: (khoảng giá USD)
Hiệu năng:
- Công suất: (số HP hoặc khoảng)
- Tăng tốc 0-100 km/h: (số giây)
- Tốc độ tối đa: (km/h)

Mô tả:
Tổng quan:
(Viết một đoạn tổng quan CHI TIẾT, tối thiểu 3-5 câu, về thiết kế, trải nghiệm lái, công nghệ, điểm nổi bật. KHÔNG được để trống.)

Chi tiết động cơ:
- Cấu hình: (loại động cơ, bố trí)
- Dung tích: (lít)
- Tăng áp/Supercharge: (nếu có)
- Hộp số: (loại và số cấp)
(Viết một đoạn văn CHI TIẾT về động cơ, công nghệ, nhiên liệu, hiệu suất, điểm đặc biệt. KHÔNG được để trống.)

Nội thất & Tính năng:
- Ghế ngồi: (chất liệu, cấu hình)
- Taplo: (tính năng chính)
- Công nghệ: (tính năng công nghệ chính)
- Tính năng nổi bật: (liệt kê 3-4 tính năng nổi bật)
(Viết một đoạn văn CHI TIẾT về nội thất, tiện nghi, công nghệ, cảm giác sử dụng, các tính năng nổi bật. KHÔNG được để trống.)

Lưu ý: Nếu thiếu bất kỳ section nào, hãy LẶP LẠI prompt và KHÔNG trả lời cho đến khi điền đủ, đúng format, đúng hướng dẫn.`
